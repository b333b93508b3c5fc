// Package geo accumulates located values for world, USA and Europe maps.
//
// The value field type decides the fill: a linear field is upserted by
// location and colored along a two-color gradient over the observed (or
// configured) value range, any other field is appended and colored per
// category with the same cycling assigner the series engine uses.
//
// Location names are turned into region codes by a Resolver. Names of three
// characters are taken as ISO 3166-1 alpha-3 codes already, and USA maps key
// regions by the name itself. GeoIPResolver converts the alpha-2 codes of a
// MaxMind database to alpha-3 so both paths agree.
package geo
