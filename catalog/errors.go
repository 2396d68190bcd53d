package catalog

import "fmt"

type (
	BookNotFound struct {
		ID string
	}
)

func (b BookNotFound) Error() string {
	return fmt.Sprintf("book %v not found", b.ID)
}
