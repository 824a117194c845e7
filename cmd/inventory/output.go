package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

// writeTable renders items into a buffer first so a failing w is reported
func writeTable(w io.Writer, items []domain.Item) error {
	var buf bytes.Buffer
	var table = tablewriter.NewWriter(&buf)
	table.Header("ID", "Name", "Price", "Quantity")

	for _, item := range items {
		if err := table.Append([]string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			item.FormattedPrice(),
			strconv.FormatInt(item.Quantity, 10),
		}); err != nil {
			return errors.Wrapf(err, "failed to append item %d", item.ID)
		}
	}
	if err := table.Render(); err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err := buf.WriteTo(w)
	return err
}

func writeItem(w io.Writer, id int64, item *domain.Item) error {
	var err error
	if item == nil {
		_, err = fmt.Fprintf(w, "item %d: absent\n", id)
	} else {
		_, err = fmt.Fprintf(w, "item %d: %s price=%s quantity=%d\n", item.ID, item.Name, item.FormattedPrice(), item.Quantity)
	}
	return err
}
