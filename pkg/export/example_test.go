package export_test

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/archexport/pkg/diagram"
	"github.com/matzehuels/archexport/pkg/errors"
	"github.com/matzehuels/archexport/pkg/export"
)

func ExampleExporter_Export() {
	d := &diagram.Diagram{
		ID:   "d-42",
		Name: "Checkout Flow",
		Nodes: []diagram.Node{
			{ID: "cart", Type: diagram.NodeUIComponent, Data: diagram.NodeData{Label: "Cart"}},
			{ID: "orders", Type: diagram.NodeAPIEndpoint, Data: diagram.NodeData{Label: "Orders API"}},
		},
		Edges: []diagram.Edge{
			{ID: "e1", Source: "cart", Target: "orders", Type: diagram.EdgeUserFlow},
		},
	}

	x := &export.Exporter{Now: func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }}
	art, err := x.Export(context.Background(), d, export.FormatCursor, nil, func(p export.Progress) {
		fmt.Printf("%s %d%%\n", p.Stage, p.Percent)
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(art.Filename, art.MediaType, art.Metadata.NodeCount)
	// Output:
	// preparing 0%
	// processing 25%
	// finalizing 90%
	// complete 100%
	// checkout-flow-2024-03-15.cursor.json application/json 2
}

func ExampleExport_notImplemented() {
	d := &diagram.Diagram{ID: "d", Name: "Any", Nodes: []diagram.Node{}, Edges: []diagram.Edge{}}

	_, err := export.Export(context.Background(), d, export.FormatPDF, nil, nil)
	e, _ := errors.As(err)
	fmt.Println(e.Code)
	fmt.Println(e.Details["plannedWork"])
	// Output:
	// NOT_IMPLEMENTED
	// paginated rendering of the markdown document
}
