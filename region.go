package nordfeed

import (
	"fmt"
	"strings"
)

// Region is a region slug as used in listing URLs.
type Region string

// Regions known to the site.
const (
	RegionAnsbach         Region = "ansbach"
	RegionBamberg         Region = "bamberg"
	RegionBayreuth        Region = "bayreuth"
	RegionErlangen        Region = "erlangen"
	RegionForchheim       Region = "forchheim"
	RegionFuerth          Region = "fuerth"
	RegionGunzenhausen    Region = "gunzenhausen"
	RegionHerzogenaurach  Region = "herzogenaurach"
	RegionHoechstadt      Region = "hoechstadt"
	RegionNeumarkt        Region = "neumarkt"
	RegionNeustadtAisch   Region = "neustadt-aisch-bad-windsheim"
	RegionNuernberg       Region = "nuernberg"
	RegionNuernbergerLand Region = "nuernberger-land"
	RegionRegensburg      Region = "regensburg"
	RegionRoth            Region = "roth"
	RegionSchwabach       Region = "schwabach"
	RegionWeissenburg     Region = "weissenburg"
	RegionRothenburgOdT   Region = "rothenburg-ob-der-tauber"
)

// Listing URLs used to take this slug before the site renamed it.
const legacyRegionRothenburgOdT = "rothenburg-o-d-t"

// RegionInfo pairs a slug with its display name.
type RegionInfo struct {
	Slug Region `json:"slug"`
	Name string `json:"name"`
}

var regions = []RegionInfo{
	{RegionAnsbach, "Ansbach"},
	{RegionBamberg, "Bamberg"},
	{RegionBayreuth, "Bayreuth"},
	{RegionErlangen, "Erlangen"},
	{RegionForchheim, "Forchheim"},
	{RegionFuerth, "Fürth"},
	{RegionGunzenhausen, "Gunzenhausen"},
	{RegionHerzogenaurach, "Herzogenaurach"},
	{RegionHoechstadt, "Höchstadt"},
	{RegionNeumarkt, "Neumarkt"},
	{RegionNeustadtAisch, "Neustadt/Aisch-Bad Windsheim"},
	{RegionNuernberg, "Nürnberg"},
	{RegionNuernbergerLand, "Nürnberger Land"},
	{RegionRegensburg, "Regensburg"},
	{RegionRoth, "Roth"},
	{RegionRothenburgOdT, "Rothenburg o.d.T."},
	{RegionSchwabach, "Schwabach"},
	{RegionWeissenburg, "Weißenburg"},
}

// Regions returns every recognized region in display order.
func Regions() []RegionInfo {
	out := make([]RegionInfo, len(regions))
	copy(out, regions)
	return out
}

// ParseRegion resolves a slug to a known region. The legacy Rothenburg slug
// is rewritten to its canonical form.
func ParseRegion(s string) (Region, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if slug == legacyRegionRothenburgOdT {
		slug = string(RegionRothenburgOdT)
	}
	for _, r := range regions {
		if string(r.Slug) == slug {
			return r.Slug, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnresolvableRegion, s)
}

// Name returns the display name, or the slug for unknown regions.
func (r Region) Name() string {
	for _, info := range regions {
		if info.Slug == r {
			return info.Name
		}
	}
	return string(r)
}
