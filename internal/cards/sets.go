package cards

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// SetInfo describes a Magic set as known to the registry.
type SetInfo struct {
	Code       string
	Name       string
	SetType    string // "expansion", "core", "masters", ...
	ReleasedAt time.Time
}

// IsExpansion reports whether the set is a premier expansion release.
func (s SetInfo) IsExpansion() bool {
	return s.SetType == "expansion"
}

var (
	setMu       sync.RWMutex
	setRegistry = map[string]SetInfo{}
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func init() {
	for _, s := range []SetInfo{
		{Code: "akr", Name: "Amonkhet Remastered", SetType: "masters", ReleasedAt: day("2020-08-13")},
		{Code: "akh", Name: "Amonkhet", SetType: "expansion", ReleasedAt: day("2017-04-28")},
		{Code: "hou", Name: "Hour of Devastation", SetType: "expansion", ReleasedAt: day("2017-07-14")},
		{Code: "grn", Name: "Guilds of Ravnica", SetType: "expansion", ReleasedAt: day("2018-10-05")},
		{Code: "rna", Name: "Ravnica Allegiance", SetType: "expansion", ReleasedAt: day("2019-01-25")},
		{Code: "war", Name: "War of the Spark", SetType: "expansion", ReleasedAt: day("2019-05-03")},
		{Code: "m20", Name: "Core Set 2020", SetType: "core", ReleasedAt: day("2019-07-12")},
		{Code: "eld", Name: "Throne of Eldraine", SetType: "expansion", ReleasedAt: day("2019-10-04")},
		{Code: "thb", Name: "Theros Beyond Death", SetType: "expansion", ReleasedAt: day("2020-01-24")},
		{Code: "iko", Name: "Ikoria: Lair of Behemoths", SetType: "expansion", ReleasedAt: day("2020-04-24")},
		{Code: "m21", Name: "Core Set 2021", SetType: "core", ReleasedAt: day("2020-07-03")},
		{Code: "znr", Name: "Zendikar Rising", SetType: "expansion", ReleasedAt: day("2020-09-25")},
		{Code: "khm", Name: "Kaldheim", SetType: "expansion", ReleasedAt: day("2021-02-05")},
		{Code: "stx", Name: "Strixhaven: School of Mages", SetType: "expansion", ReleasedAt: day("2021-04-23")},
		{Code: "afr", Name: "Adventures in the Forgotten Realms", SetType: "expansion", ReleasedAt: day("2021-07-23")},
		{Code: "mid", Name: "Innistrad: Midnight Hunt", SetType: "expansion", ReleasedAt: day("2021-09-24")},
		{Code: "vow", Name: "Innistrad: Crimson Vow", SetType: "expansion", ReleasedAt: day("2021-11-19")},
		{Code: "neo", Name: "Kamigawa: Neon Dynasty", SetType: "expansion", ReleasedAt: day("2022-02-18")},
		{Code: "snc", Name: "Streets of New Capenna", SetType: "expansion", ReleasedAt: day("2022-04-29")},
		{Code: "dmu", Name: "Dominaria United", SetType: "expansion", ReleasedAt: day("2022-09-09")},
		{Code: "bro", Name: "The Brothers' War", SetType: "expansion", ReleasedAt: day("2022-11-18")},
		{Code: "one", Name: "Phyrexia: All Will Be One", SetType: "expansion", ReleasedAt: day("2023-02-10")},
		{Code: "mom", Name: "March of the Machine", SetType: "expansion", ReleasedAt: day("2023-04-21")},
		{Code: "woe", Name: "Wilds of Eldraine", SetType: "expansion", ReleasedAt: day("2023-09-08")},
		{Code: "lci", Name: "The Lost Caverns of Ixalan", SetType: "expansion", ReleasedAt: day("2023-11-17")},
		{Code: "mkm", Name: "Murders at Karlov Manor", SetType: "expansion", ReleasedAt: day("2024-02-09")},
		{Code: "otj", Name: "Outlaws of Thunder Junction", SetType: "expansion", ReleasedAt: day("2024-04-19")},
		{Code: "mh3", Name: "Modern Horizons 3", SetType: "draft_innovation", ReleasedAt: day("2024-06-14")},
		{Code: "blb", Name: "Bloomburrow", SetType: "expansion", ReleasedAt: day("2024-08-02")},
		{Code: "dsk", Name: "Duskmourn: House of Horror", SetType: "expansion", ReleasedAt: day("2024-09-27")},
		{Code: "fdn", Name: "Foundations", SetType: "core", ReleasedAt: day("2024-11-15")},
		{Code: "dft", Name: "Aetherdrift", SetType: "expansion", ReleasedAt: day("2025-02-14")},
		{Code: "tdm", Name: "Tarkir: Dragonstorm", SetType: "expansion", ReleasedAt: day("2025-04-11")},
		{Code: "eoe", Name: "Edge of Eternities", SetType: "expansion", ReleasedAt: day("2025-08-01")},
	} {
		setRegistry[s.Code] = s
	}
}

// RegisterSet adds or replaces a set in the registry. Storage layers feed
// freshly fetched set data through here so analytics stay current.
func RegisterSet(info SetInfo) {
	info.Code = strings.ToLower(info.Code)
	setMu.Lock()
	defer setMu.Unlock()
	setRegistry[info.Code] = info
}

// SetByCode looks up a set by its (case-insensitive) code.
func SetByCode(code string) (SetInfo, bool) {
	setMu.RLock()
	defer setMu.RUnlock()
	info, ok := setRegistry[strings.ToLower(code)]
	return info, ok
}

// LatestExpansion returns the most recently released expansion-type set among
// the given codes. The second return is false when no code belongs to a known
// expansion.
func LatestExpansion(codes []string) (SetInfo, bool) {
	var candidates []SetInfo
	for _, code := range codes {
		if info, ok := SetByCode(code); ok && info.IsExpansion() {
			candidates = append(candidates, info)
		}
	}
	if len(candidates) == 0 {
		return SetInfo{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ReleasedAt.After(candidates[j].ReleasedAt)
	})
	return candidates[0], true
}
