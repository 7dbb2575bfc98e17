package service

import (
	"fmt"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/shopspring/decimal"
)

const defaultSkeletonCount = 3

// Selector holds a single selection over options supplied by the caller.
// Persisting the choice is left to the onSelect callback's owner.
type Selector[T any] struct {
	loading      bool
	emptyMessage string
	items        []T
	idOf         func(T) string
	describe     func(T) (label, description string)
	selectedID   string
}

func NewSelector[T any](items []T, idOf func(T) string, describe func(T) (string, string), selectedID string, loading bool, emptyMessage string) *Selector[T] {
	s := &Selector[T]{
		loading:      loading,
		emptyMessage: emptyMessage,
		items:        items,
		idOf:         idOf,
		describe:     describe,
	}
	if s.indexOf(selectedID) >= 0 {
		s.selectedID = selectedID
	}

	return s
}

// Select reports the chosen item through onSelect. Unknown ids leave the
// selection untouched.
func (s *Selector[T]) Select(id string, onSelect func(T)) bool {
	if s.loading {
		return false
	}

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.selectedID = id
	if onSelect != nil {
		onSelect(s.items[i])
	}

	return true
}

func (s *Selector[T]) Selected() (T, bool) {
	var zero T
	if i := s.indexOf(s.selectedID); i >= 0 {
		return s.items[i], true
	}
	return zero, false
}

func (s *Selector[T]) View() dto.SelectorView[T] {
	switch {
	case s.loading:
		return dto.SelectorView[T]{State: dto.SelectorLoading, SkeletonCount: defaultSkeletonCount}
	case len(s.items) == 0:
		return dto.SelectorView[T]{State: dto.SelectorEmpty, EmptyMessage: s.emptyMessage}
	}

	view := dto.SelectorView[T]{
		State:      dto.SelectorReady,
		SelectedID: s.selectedID,
		Options:    make([]dto.SelectorOption[T], 0, len(s.items)),
	}
	for _, item := range s.items {
		label, description := s.describe(item)
		id := s.idOf(item)
		view.Options = append(view.Options, dto.SelectorOption[T]{
			ID:          id,
			Label:       label,
			Description: description,
			Selected:    id == s.selectedID && id != "",
			Value:       item,
		})
	}

	return view
}

func (s *Selector[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range s.items {
		if s.idOf(item) == id {
			return i
		}
	}
	return -1
}

func NewAddressSelector(addresses []domain.Address, selectedID string, loading bool) *Selector[domain.Address] {
	return NewSelector(addresses,
		func(a domain.Address) string { return a.ID },
		func(a domain.Address) (string, string) {
			parts := []string{a.StreetLine1}
			if a.StreetLine2 != "" {
				parts = append(parts, a.StreetLine2)
			}
			parts = append(parts, a.City, strings.TrimSpace(a.Province+" "+a.PostalCode))
			return a.FullName, strings.Join(parts, ", ")
		},
		selectedID, loading, "You have no saved addresses yet.")
}

func NewShippingSelector(options []domain.ShippingOption, selectedKey string, loading bool) *Selector[domain.ShippingOption] {
	return NewSelector(options,
		func(o domain.ShippingOption) string { return o.Key() },
		func(o domain.ShippingOption) (string, string) {
			label := strings.TrimSpace(o.CourierName + " " + o.Service)
			description := utils.FormatRupiah(decimal.NewFromInt(o.Cost))
			if days := estimatedDaysLabel(o); days != "" {
				description += ", " + days
			}
			return label, description
		},
		selectedKey, loading, "No shipping options available for this destination.")
}

func estimatedDaysLabel(o domain.ShippingOption) string {
	switch {
	case o.MinEstimatedDays == 0 && o.MaxEstimatedDays == 0:
		return ""
	case o.MinEstimatedDays == o.MaxEstimatedDays && o.MaxEstimatedDays == 1:
		return "1 day"
	case o.MinEstimatedDays == o.MaxEstimatedDays:
		return fmt.Sprintf("%d days", o.MinEstimatedDays)
	default:
		return fmt.Sprintf("%d-%d days", o.MinEstimatedDays, o.MaxEstimatedDays)
	}
}
