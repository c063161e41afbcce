package geotrans

// contextState is the Context lifecycle state.
type contextState int

const (
	stateUninitialized contextState = iota
	stateActive
	stateDestroyed
)

// Context is the single-threaded owner of an active ellipsoid, a geodesic
// handle, and a datum-transform table. It is the entry point for every
// projection, datum-shift, and geodesic operation in this package.
// Not safe for concurrent use; callers wanting concurrency create one
// Context per goroutine.
type Context struct {
	state     contextState
	datum     Datum
	ellipsoid Ellipsoid
	geodesic  *geodesic

	utm     *utmConverter
	mgrs    *mgrsConverter
	british *britishGridConverter
	japan   *japanGridConverter

	transforms map[[2]Datum]HelmertParams

	onError ErrorCallback
}

// NewContext creates an Active context for the given datum. If resource
// allocation fails the process-wide callback installed via
// SetDefaultErrorCallback is invoked before the error is also returned;
// caller-input failures (an unknown datum) are only returned.
func NewContext(datum Datum) (*Context, error) {
	c := &Context{}
	if err := c.init(datum); err != nil {
		if ge, ok := err.(*Error); ok && ge.Kind == KindMemory && defaultErrorCallback != nil {
			defaultErrorCallback(err)
		}
		return nil, err
	}
	return c, nil
}

func (c *Context) init(datum Datum) error {
	ellipsoid, err := ellipsoidOf(datum)
	if err != nil {
		return err
	}

	british, err := newBritishGridConverter()
	if err != nil {
		return wrapError(KindMemory, err, "constructing british grid converter")
	}
	japan, err := newJapanGridConverter()
	if err != nil {
		return wrapError(KindMemory, err, "constructing japan grid converter")
	}

	c.state = stateActive
	c.datum = datum
	c.ellipsoid = ellipsoid
	c.geodesic = newGeodesic(ellipsoid)
	c.utm = newUTMConverter(ellipsoid)
	c.mgrs = newMGRSConverter(ellipsoid)
	c.british = british
	c.japan = japan
	c.transforms = seedTransformTable()
	return nil
}

// seedTransformTable builds the default per-pair table, deriving the
// reverse direction of every published forward pair.
func seedTransformTable() map[[2]Datum]HelmertParams {
	table := defaultTransformTable()
	forward := make(map[[2]Datum]HelmertParams, len(table))
	for k, v := range table {
		forward[k] = v
	}
	for k, v := range forward {
		reverseKey := [2]Datum{k[1], k[0]}
		if _, exists := table[reverseKey]; !exists {
			table[reverseKey] = deriveReverseParams(v)
		}
	}
	return table
}

func (c *Context) checkActive() error {
	if c.state == stateDestroyed {
		return newError(KindInvalidInput, "context has been destroyed")
	}
	if c.state != stateActive {
		return newError(KindInvalidInput, "context has not been initialized")
	}
	return nil
}

// SetErrorCallback stores a per-context error sink. No operation of this
// package currently invokes it: construction failures happen before a
// Context exists and go to the callback installed with
// SetDefaultErrorCallback. Must be safe for concurrent use if the callback
// itself may be shared across Contexts.
func (c *Context) SetErrorCallback(cb ErrorCallback) {
	c.onError = cb
}

// SetDatum mutates the context's active ellipsoid to the one registered
// for datum, re-initializing the geodesic handle and the per-ellipsoid
// projectors. Valid only while Active.
func (c *Context) SetDatum(datum Datum) error {
	if err := c.checkActive(); err != nil {
		return err
	}
	ellipsoid, err := ellipsoidOf(datum)
	if err != nil {
		return err
	}
	c.datum = datum
	c.ellipsoid = ellipsoid
	c.geodesic = newGeodesic(ellipsoid)
	c.utm = newUTMConverter(ellipsoid)
	c.mgrs = newMGRSConverter(ellipsoid)
	return nil
}

// SetCustomEllipsoid overrides the context's active ellipsoid with
// caller-supplied parameters and re-initializes the geodesic handle.
func (c *Context) SetCustomEllipsoid(a, f float64) error {
	if err := c.checkActive(); err != nil {
		return err
	}
	ellipsoid, err := newCustomEllipsoid(a, f)
	if err != nil {
		return err
	}
	c.ellipsoid = ellipsoid
	c.geodesic = newGeodesic(ellipsoid)
	c.utm = newUTMConverter(ellipsoid)
	c.mgrs = newMGRSConverter(ellipsoid)
	return nil
}

// SetTransformParams installs forward parameters for (from, to) and
// derives and installs the reverse pair automatically.
func (c *Context) SetTransformParams(from, to Datum, p HelmertParams) error {
	if err := c.checkActive(); err != nil {
		return err
	}
	c.transforms[[2]Datum{from, to}] = p
	c.transforms[[2]Datum{to, from}] = deriveReverseParams(p)
	return nil
}

// TransformParams returns the currently installed parameters for (from,
// to) and whether a pair was actually registered -- a registered identity
// (all-zero HelmertParams seeded deliberately, e.g. WGS84<->NAD83) and an
// unregistered pair both report HelmertParams{}, but only the former
// returns ok=true. Callers that need "identity vs. no path" distinguished,
// rather than a convenience zero value, must check ok.
func (c *Context) TransformParams(from, to Datum) (params HelmertParams, ok bool) {
	params, ok = c.transforms[[2]Datum{from, to}]
	return params, ok
}

// ShiftDatum converts g to the target datum via the context's transform
// table. A pair with no registered entry -- not even an explicit identity
// -- is a genuinely absent transform path, not an identity, and fails with
// KindDatumTransform rather than silently relabeling the datum tag.
func (c *Context) ShiftDatum(g GeoCoord, target Datum) (GeoCoord, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, err
	}
	if g.Datum == target {
		return g, nil
	}
	params, ok := c.TransformParams(g.Datum, target)
	if !ok {
		return GeoCoord{}, newErrorf(KindDatumTransform, "no transform registered from %v to %v", g.Datum, target)
	}
	out, err := shiftDatum(g, target, params)
	if err != nil {
		return GeoCoord{}, wrapError(KindDatumTransform, err, "shifting datum")
	}
	return out, nil
}

// Destroy releases the context's resources and transitions it to the
// terminal Destroyed state; any further use returns InvalidInput.
func (c *Context) Destroy() {
	c.state = stateDestroyed
	c.transforms = nil
}

// Distance computes the geodesic distance and forward/reverse azimuths
// (radians) between two points, shifting p2 to p1's datum first if needed.
func (c *Context) Distance(p1, p2 GeoCoord) (GeodesicResult, error) {
	if err := c.checkActive(); err != nil {
		return GeodesicResult{}, err
	}
	if p2.Datum != p1.Datum {
		var err error
		p2, err = c.ShiftDatum(p2, p1.Datum)
		if err != nil {
			return GeodesicResult{}, err
		}
	}
	res, err := c.geodesic.inverse(p1.LatRadians(), p1.LonRadians(), p2.LatRadians(), p2.LonRadians())
	if err != nil {
		return GeodesicResult{}, wrapError(KindCalculation, err, "geodesic inverse")
	}
	return res, nil
}

// Direct computes the destination point reached from start along azimuth
// (radians) for distance meters; the result carries start's datum.
func (c *Context) Direct(start GeoCoord, azimuth, distance float64) (GeoCoord, float64, error) {
	if err := c.checkActive(); err != nil {
		return GeoCoord{}, 0, err
	}
	if distance < 0 {
		return GeoCoord{}, 0, newError(KindInvalidInput, "distance must be non-negative")
	}
	lat2, lon2, azi2 := c.geodesic.direct(start.LatRadians(), start.LonRadians(), azimuth, distance)
	return NewGeoCoord(radToDeg(lat2), radToDeg(lon2), start.Altitude, start.Datum), azi2, nil
}
