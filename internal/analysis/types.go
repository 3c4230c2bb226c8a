package analysis

// Summary is the top-level structure of the listening summary report.
type Summary struct {
	Totals        Totals        `yaml:"totals"`
	TopSongs      []SongStat    `yaml:"top_songs"`
	TopArtists    []ArtistStat  `yaml:"top_artists"`
	RecentArtists RecentArtists `yaml:"recent_artists"`
	TopDays       []DayStat     `yaml:"top_days"`
	Weekdays      []WeekdayStat `yaml:"weekdays"`
}

type Totals struct {
	SongRecords      int64  `yaml:"song_records"`
	ListeningMinutes int64  `yaml:"listening_minutes"`
	UniqueSongs      int64  `yaml:"unique_songs"`
	FirstDay         string `yaml:"first_day,omitempty"`
	LastDay          string `yaml:"last_day,omitempty"`
}

type SongStat struct {
	Artist  string `yaml:"artist"`
	Track   string `yaml:"track"`
	Minutes int64  `yaml:"minutes"`
}

type ArtistStat struct {
	Name      string `yaml:"name"`
	Minutes   int64  `yaml:"minutes"`
	PeakYears string `yaml:"peak_years,omitempty"`
}

type RecentArtists struct {
	Years   int          `yaml:"years"`
	Since   string       `yaml:"since,omitempty"`
	Artists []ArtistStat `yaml:"artists"`
}

type DayStat struct {
	Date    string `yaml:"date"`
	Minutes int64  `yaml:"minutes"`
}

type WeekdayStat struct {
	Weekday    string `yaml:"weekday"`
	AvgMinutes int64  `yaml:"avg_minutes"`
	Days       int64  `yaml:"days"`
}
