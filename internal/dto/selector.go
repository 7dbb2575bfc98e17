package dto

type SelectorState string

const (
	SelectorLoading SelectorState = "loading"
	SelectorEmpty   SelectorState = "empty"
	SelectorReady   SelectorState = "ready"
)

type SelectorOption[T any] struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Selected    bool   `json:"selected"`
	Value       T      `json:"value"`
}

// SelectorView is rendered by exactly one branch: a skeleton while loading,
// a message when empty, or the options.
type SelectorView[T any] struct {
	State         SelectorState       `json:"state"`
	SkeletonCount int                 `json:"skeletonCount,omitempty"`
	EmptyMessage  string              `json:"emptyMessage,omitempty"`
	Options       []SelectorOption[T] `json:"options,omitempty"`
	SelectedID    string              `json:"selectedId,omitempty"`
}
