package render

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/cluster"
)

// ExportShapefile writes every assigned address as a POINT shape with team,
// color, and address attributes, for loading into GIS tools. path should end
// in .shp; go-shp creates the companion .shx and .dbf next to it.
func ExportShapefile(path string, res *cluster.Result) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "render: create shapefile %s", path)
	}
	defer w.Close()

	fields := []shp.Field{
		shp.StringField("TEAM", 32),
		shp.StringField("COLOR", 16),
		shp.StringField("ADDRESS", 128),
		shp.NumberField("ROW", 8),
	}
	w.SetFields(fields)

	written := 0
	for _, g := range res.Groups {
		for _, a := range g.Addresses {
			n := w.Write(&shp.Point{X: a.Coordinate.Longitude, Y: a.Coordinate.Latitude})
			row := int(n)
			if err := w.WriteAttribute(row, 0, g.Name); err != nil {
				return eris.Wrap(err, "render: write team attribute")
			}
			if err := w.WriteAttribute(row, 1, g.Color); err != nil {
				return eris.Wrap(err, "render: write color attribute")
			}
			if err := w.WriteAttribute(row, 2, a.Text); err != nil {
				return eris.Wrap(err, "render: write address attribute")
			}
			if err := w.WriteAttribute(row, 3, a.Row); err != nil {
				return eris.Wrap(err, "render: write row attribute")
			}
			written++
		}
	}

	zap.L().Info("render: shapefile exported",
		zap.String("path", path),
		zap.Int("points", written),
	)
	return nil
}
