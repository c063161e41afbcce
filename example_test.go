package geotrans_test

import (
	"fmt"

	"github.com/mkruger/geotrans"
)

func ExampleContext_ToMGRS() {
	ctx, _ := geotrans.NewContext(geotrans.DatumWGS84)
	defer ctx.Destroy()

	m, _ := ctx.ToMGRS(geotrans.NewGeoCoord(31.230416, 121.473701, 0, geotrans.DatumWGS84), 5)
	fmt.Printf("%d%c\n", m.Zone, m.Band)
	// Output: 51R
}

func ExampleContext_ToUTM() {
	ctx, _ := geotrans.NewContext(geotrans.DatumWGS84)
	defer ctx.Destroy()

	u, _ := ctx.ToUTM(geotrans.NewGeoCoord(-33.87, 151.21, 0, geotrans.DatumWGS84), 0)
	fmt.Println(u.Zone)
	// Output: 56
}
