package change

import (
	"go-change-maker/domain"
)

// Decompose makes change for cents greedily from the largest denomination down.
// Denominations with no coins are left out. cents must not be negative.
func Decompose(cents domain.Cents) domain.Change {
	change := domain.Change{}
	remaining := cents
	for _, d := range domain.Denominations {
		count := remaining / d.Value
		remaining %= d.Value
		if count > 0 {
			change = append(change, domain.ChangeLine{Count: int64(count), Name: d.Name})
		}
	}
	return change
}
