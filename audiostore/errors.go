package audiostore

import "fmt"

type (
	AssetNotFound struct {
		BookID string
		Name   string
	}

	InvalidName struct {
		Name string
	}
)

func (a AssetNotFound) Error() string {
	return fmt.Sprintf("asset %v not found for book %v", a.Name, a.BookID)
}

func (i InvalidName) Error() string {
	return fmt.Sprintf("%v is not a valid file or book name", i.Name)
}
