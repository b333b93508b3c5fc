// Package chart restricts the streaming engine to the chart types a renderer
// can draw and turns snapshots into layered views.
//
// FamilyBasic accepts line, area, bar and scatter charts; FamilyInline
// accepts their spark variants. A configuration naming any other type is
// rejected with errs.ErrUnsupportedChart before the engine sees it.
//
//	c, err := chart.NewBasic(cfg)
//	if err != nil {
//	    return err
//	}
//	view, err := c.Update(batch)
//	for _, layer := range view.Layers {
//	    for _, s := range layer.Series {
//	        draw(layer.Type, s.Color, s.Points)
//	    }
//	}
package chart
