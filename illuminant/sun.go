package illuminant

import (
	"math"
	"time"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// SunDirection returns the unit vector towards the Sun in Earth-fixed
// coordinates (x to the Greenwich meridian, z to the north pole).
func SunDirection(t time.Time) (x, y, z float64) {
	jd := julian.TimeToJD(t.UTC())

	// apparent right ascension and declination
	ra, dec := solar.ApparentEquatorial(jd)
	xi := dec.Cos() * ra.Cos()
	yi := dec.Cos() * ra.Sin()
	zi := dec.Sin()

	// rotate by Greenwich apparent sidereal time
	gast := sidereal.Apparent(jd).Angle()
	c, s := gast.Cos(), gast.Sin()
	return xi*c + yi*s, -xi*s + yi*c, zi
}

// SunElevation returns the Sun's geometric elevation above the horizon, in
// degrees, for an observer at latDeg/lonDeg (east positive) on a spherical Earth.
func SunElevation(t time.Time, latDeg, lonDeg float64) float64 {
	lat, lon := unit.AngleFromDeg(latDeg), unit.AngleFromDeg(lonDeg)
	ux := lat.Cos() * lon.Cos()
	uy := lat.Cos() * lon.Sin()
	uz := lat.Sin()

	sx, sy, sz := SunDirection(t)
	sinH := ux*sx + uy*sy + uz*sz
	return unit.Angle(math.Asin(math.Max(-1, math.Min(1, sinH)))).Deg()
}

// AirMass is the relative optical path length through the atmosphere for a
// body at elevation deg (Kasten & Young 1989). It is +Inf at or below the horizon.
func AirMass(elevationDeg float64) float64 {
	if elevationDeg <= 0 {
		return math.Inf(1)
	}
	h := unit.AngleFromDeg(elevationDeg)
	return 1 / (h.Sin() + 0.50572*math.Pow(elevationDeg+6.07995, -1.6364))
}

// RayleighDepth is the vertical Rayleigh optical depth of a standard
// atmosphere at the given wavelength (nm), after Hansen & Travis (1974).
func RayleighDepth(nm float64) float64 {
	l := nm / 1000 // µm
	l2 := l * l
	l4 := l2 * l2
	return 0.008569 / l4 * (1 + 0.0113/l2 + 0.00013/l4)
}

// Transmission returns the direct-beam Rayleigh transmittance per wavelength
// for the given air mass.
func Transmission(wavelengths []float64, airMass float64) []float64 {
	out := make([]float64, len(wavelengths))
	if math.IsInf(airMass, 1) {
		return out
	}
	for i, wl := range wavelengths {
		out[i] = math.Exp(-RayleighDepth(wl) * airMass)
	}
	return out
}

// Sunlight models the direct solar spectrum seen from latDeg/lonDeg at time
// t: a SunTemperature blackbody dimmed by Rayleigh scattering. The result is
// peak-normalized; it is all zeros while the Sun is below the horizon.
func Sunlight(wavelengths []float64, t time.Time, latDeg, lonDeg float64) []float64 {
	elev := SunElevation(t, latDeg, lonDeg)
	out := make([]float64, len(wavelengths))
	if elev <= 0 {
		return out
	}
	bb := Blackbody(wavelengths, SunTemperature)
	vecmath.MulBlock(out, bb, Transmission(wavelengths, AirMass(elev)))
	Normalize(out)
	return out
}
