package rowstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// ExportWorkbook copies every known table of src into a new workbook at path.
// It refuses to overwrite an existing file.
func ExportWorkbook(ctx context.Context, src Store, path string) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("export target %s already exists", path)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	dst, err := OpenXLSXStore(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dst.Close())
	}()

	for _, name := range TableNames {
		from, err := src.Table(ctx, name)
		if err != nil {
			return err
		}
		to, err := dst.Table(ctx, name)
		if err != nil {
			return err
		}
		rows, err := from.Rows(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := to.Append(ctx, row); err != nil {
				return fmt.Errorf("failed to export %s: %w", name, err)
			}
		}
	}
	return nil
}
