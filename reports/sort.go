package reports

import (
	"sort"
	"strings"

	"khata-backend/models"
)

// Sort directions. Toggling and per-view defaults are a client concern; the
// engine just applies a named key and direction, stably.
const (
	Asc  = "asc"
	Desc = "desc"
)

// SortBuyerSummaries sorts in place by a named key. Numeric keys compare
// numerically, string keys lexically; unknown keys leave the order untouched.
func SortBuyerSummaries(list []BuyerSummary, key, dir string) {
	desc := dir == Desc
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		var less bool
		switch key {
		case "buyer":
			less = strings.Compare(a.Buyer, b.Buyer) < 0
		case "totalAmount":
			less = a.TotalAmount.LessThan(b.TotalAmount)
		case "transactionCount":
			less = a.TransactionCount < b.TransactionCount
		case "lastDate":
			less = a.LastDate.Before(b.LastDate)
		case "oldestDate":
			less = a.OldestDate.Before(b.OldestDate)
		case "totalPending":
			less = a.TotalPending.LessThan(b.TotalPending)
		default:
			return false
		}
		if desc {
			return !less && !equalBuyerKey(a, b, key)
		}
		return less
	})
}

func equalBuyerKey(a, b BuyerSummary, key string) bool {
	switch key {
	case "buyer":
		return a.Buyer == b.Buyer
	case "totalAmount":
		return a.TotalAmount.Equal(b.TotalAmount)
	case "transactionCount":
		return a.TransactionCount == b.TransactionCount
	case "lastDate":
		return a.LastDate.Equal(b.LastDate)
	case "oldestDate":
		return a.OldestDate.Equal(b.OldestDate)
	case "totalPending":
		return a.TotalPending.Equal(b.TotalPending)
	}
	return false
}

// SortStock sorts stock items in place by a named key; "value" is the derived
// quantity×price key the stock view exposes.
func SortStock(items []models.StockItem, key, dir string) {
	desc := dir == Desc
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var less, equal bool
		switch key {
		case "name":
			less, equal = a.Name < b.Name, a.Name == b.Name
		case "category":
			less, equal = a.Category < b.Category, a.Category == b.Category
		case "quantity":
			less, equal = a.Quantity.LessThan(b.Quantity), a.Quantity.Equal(b.Quantity)
		case "price":
			less, equal = a.Price.LessThan(b.Price), a.Price.Equal(b.Price)
		case "value":
			av, bv := a.Quantity.Mul(a.Price), b.Quantity.Mul(b.Price)
			less, equal = av.LessThan(bv), av.Equal(bv)
		default:
			return false
		}
		if desc {
			return !less && !equal
		}
		return less
	})
}
