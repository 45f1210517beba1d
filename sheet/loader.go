package sheet

import "context"

type Loader interface {
	Load(ctx context.Context, path string) (*Workbook, error)
}
