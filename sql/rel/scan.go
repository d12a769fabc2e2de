package rel

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
	"github.com/dshills/FrameQL/sqlerr"
)

// TableScanPlugin resolves a table scan against the registry. No data is
// copied: the result is a fresh logical view over the registered frame.
type TableScanPlugin struct{}

func (TableScanPlugin) Kind() string { return plan.KindTableScan }

func (TableScanPlugin) Convert(node plan.Node, _ []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	scan, ok := node.(*plan.TableScan)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.TableScan, got %T", node)
	}
	dc, ok := ctx.Catalog.Table(strings.ToLower(scan.Table))
	if !ok {
		return container.DataContainer{}, sqlerr.UndefinedTableError(scan.Table)
	}
	// DataContainer is a value; returning it yields an independent view.
	return dc, nil
}
