package rel

import (
	"fmt"
	"strings"

	"github.com/dshills/FrameQL/sql/container"
	"github.com/dshills/FrameQL/sql/plan"
)

// SyntheticName builds the placeholder logical name for an unnamed
// output column. The orchestrator later renames these to the user's
// select-list text; meaningful names are never touched.
func SyntheticName(i int) string {
	return fmt.Sprintf("EXPR$%d", i)
}

// IsSyntheticName reports whether a logical name was generated rather
// than carried over from a source column.
func IsSyntheticName(name string) bool {
	return strings.HasPrefix(name, "EXPR$")
}

// ProjectPlugin computes each output expression over the child and
// returns a container holding exactly the projected columns, in order.
// Every output gets a fresh physical label; columns not re-projected are
// dropped from the logical schema.
type ProjectPlugin struct{}

func (ProjectPlugin) Kind() string { return plan.KindProject }

func (ProjectPlugin) Convert(node plan.Node, children []container.DataContainer, ctx *ConvertContext) (container.DataContainer, error) {
	project, ok := node.(*plan.Project)
	if !ok {
		return container.DataContainer{}, fmt.Errorf("expected *plan.Project, got %T", node)
	}
	child := children[0]
	n := child.DF.Len()

	df := child.DF
	cc := container.NewColumnContainer(nil)
	for i, expr := range project.Exprs {
		d, err := ctx.Rex(expr, child)
		if err != nil {
			return container.DataContainer{}, err
		}
		label := container.TemporaryLabel()
		df, err = df.WithColumn(d.Series(label, n))
		if err != nil {
			return container.DataContainer{}, err
		}
		name := ""
		if i < len(project.Names) {
			name = project.Names[i]
		}
		if name == "" {
			name = SyntheticName(i)
		}
		cc, err = cc.Add(name, label)
		if err != nil {
			return container.DataContainer{}, err
		}
	}
	return container.New(df, cc), nil
}
