package category

// DefaultEntries returns the built-in category list. Declaration order is a
// behavioral commitment: categories are scanned top to bottom and the first
// keyword hit wins, so "Concert / Music" resolving "festival" ahead of
// "Cultural" is intentional. Reordering changes classification results.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Name: "Concert / Music",
			Keywords: []string{
				"concert", "music", "band", "dj", "gig", "festival", "live",
				"orchestra", "choir", "singer", "album", "acoustic",
			},
		},
		{
			Name: "Workshop / Seminar",
			Keywords: []string{
				"workshop", "seminar", "training", "bootcamp", "webinar",
				"masterclass", "course", "lecture", "tutorial",
			},
		},
		{
			Name: "Conference / Meetup",
			Keywords: []string{
				"conference", "summit", "meetup", "symposium", "expo",
				"convention", "hackathon", "networking",
			},
		},
		{
			Name: "Sports / Fitness",
			Keywords: []string{
				"match", "tournament", "marathon", "race", "yoga", "fitness",
				"game", "league", "championship", "run", "cycling",
			},
		},
		{
			Name: "Cultural",
			Keywords: []string{
				"dance", "art", "theatre", "theater", "exhibition", "heritage",
				"cultural", "fair", "parade", "film", "poetry", "museum",
			},
		},
		{
			Name: "Food / Drink",
			Keywords: []string{
				"food", "tasting", "dinner", "brunch", "buffet", "culinary",
				"wine", "beer", "barbecue", "bbq",
			},
		},
		{
			Name: "Charity / Community",
			Keywords: []string{
				"charity", "fundraiser", "donation", "volunteer", "community",
				"drive", "awareness", "benefit",
			},
		},
		{
			Name: "Religious",
			Keywords: []string{
				"church", "prayer", "worship", "mass", "temple", "mosque",
				"retreat", "sermon",
			},
		},
	}
}
