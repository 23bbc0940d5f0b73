package usage

import "strings"

// Category classifies an application for per-category minute rollups.
type Category string

const (
	CategoryGame    Category = "game"
	CategorySocial  Category = "social"
	CategoryOther   Category = "other"
	CategoryUnknown Category = "unknown"
)

// Categorizer resolves an application identifier to its category.
type Categorizer interface {
	Categorize(appID string) Category
}

// CategorizerFunc adapts a function to the Categorizer interface.
type CategorizerFunc func(appID string) Category

func (f CategorizerFunc) Categorize(appID string) Category {
	return f(appID)
}

var knownCategories = map[string]Category{
	"com.facebook.katana":          CategorySocial,
	"com.instagram.android":        CategorySocial,
	"com.snapchat.android":         CategorySocial,
	"com.twitter.android":          CategorySocial,
	"com.zhiliaoapp.musically":     CategorySocial,
	"com.whatsapp":                 CategorySocial,
	"org.telegram.messenger":       CategorySocial,
	"com.discord":                  CategorySocial,
	"com.reddit.frontpage":         CategorySocial,
	"com.google.android.youtube":   CategorySocial,
	"com.roblox.client":            CategoryGame,
	"com.mojang.minecraftpe":       CategoryGame,
	"com.supercell.clashofclans":   CategoryGame,
	"com.supercell.brawlstars":     CategoryGame,
	"com.kiloo.subwaysurf":         CategoryGame,
	"com.dts.freefireth":           CategoryGame,
	"com.activision.callofduty":    CategoryGame,
	"com.epicgames.fortnite":       CategoryGame,
	"com.king.candycrushsaga":      CategoryGame,
	"com.innersloth.spacemafia":    CategoryGame,
	"com.android.chrome":           CategoryOther,
	"com.google.android.gm":        CategoryOther,
	"com.google.android.apps.docs": CategoryOther,
}

// DefaultCategorizer resolves categories from a fixed table of well-known
// application identifiers, falling back to substring heuristics and finally
// to CategoryUnknown.
func DefaultCategorizer() Categorizer {
	return CategorizerFunc(func(appID string) Category {
		if c, ok := knownCategories[appID]; ok {
			return c
		}

		id := strings.ToLower(appID)
		switch {
		case strings.Contains(id, "game"):
			return CategoryGame
		case strings.Contains(id, "social"), strings.Contains(id, "chat"), strings.Contains(id, "messenger"):
			return CategorySocial
		default:
			return CategoryUnknown
		}
	})
}

// DisplayName returns the sample's reported name, or a name derived from the
// application identifier when the agent reported none: the final dot-separated
// segment with its first rune uppercased.
func (s Sample) DisplayName() string {
	if s.AppName != "" {
		return s.AppName
	}

	name := s.AppID
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	if name == "" {
		return s.AppID
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
