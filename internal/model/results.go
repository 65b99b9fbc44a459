package model

import "time"

// ---- Aggregated statistics (freshly allocated per computation) ----

// CampBucket is the coarse three-way split used by meeting and voting
// statistics: the two main camps, everything else pooled as solo.
type CampBucket string

const (
	BucketVillageois CampBucket = "Villageois"
	BucketLoup       CampBucket = "Loup"
	BucketSolo       CampBucket = "Solo"
)

// DeathTypeCount is one row of the death-cause breakdown.
type DeathTypeCount struct {
	Type    DeathType
	Count   int
	Percent float64
}

// KillerStats aggregates the kills credited to one player.
type KillerStats struct {
	Name            string
	Kills           int
	UniqueVictims   int
	ByType          map[DeathType]int
	ByCamp          map[Camp]int // camp the kill was attributed to
	GamesPlayed     int
	AvgKillsPerGame float64
}

// VictimStats aggregates one player's deaths, including players with zero
// deaths who nonetheless played games.
type VictimStats struct {
	Name        string
	Deaths      int
	ByType      map[DeathType]int
	KilledBy    map[string]int
	GamesPlayed int
}

// DeathStats is the full killer/victim/death-type aggregation.
type DeathStats struct {
	TotalDeaths int
	ByType      []DeathTypeCount
	KillsByCamp map[Camp]int
	Killers     []KillerStats
	Victims     []VictimStats
}

// PlayerMeetingStats is one player's cumulative meeting participation.
type PlayerMeetingStats struct {
	Name         string
	Participated int
	Died         int // voted out, at the exact meeting attended
	SurvivalRate float64
}

// CampMeetingStats is the per-bucket analogue of PlayerMeetingStats.
type CampMeetingStats struct {
	Participated int
	Died         int
	SurvivalRate float64
}

// MeetingSurvival holds meeting-survival rates. Players with zero
// participation are excluded rather than reported at 0%.
type MeetingSurvival struct {
	Players []PlayerMeetingStats
	Camps   map[CampBucket]CampMeetingStats
}

// MeetingVoteStats describes one meeting of one game.
type MeetingVoteStats struct {
	Meeting           int
	Participants      int
	Voters            int
	Abstainers        int
	ParticipationRate float64
	TopTarget         string
	TopTargetVotes    int
	TotalVotes        int
	ConsensusLevel    float64
}

// GameVoteAnalysis is the per-game voting breakdown.
type GameVoteAnalysis struct {
	DisplayID string
	Meetings  []MeetingVoteStats
}

// PlayerVotingStats aggregates one player's voting behavior across games.
type PlayerVotingStats struct {
	Name              string
	Votes             int
	Abstentions       int
	ParticipationRate float64
	TargetCounts      map[string]int
	TopTarget         string
	DistinctTargets   int
	AsVillageois      int
	AsLoup            int
	AsOther           int
}

// TargetStats aggregates the votes received by one player across games.
type TargetStats struct {
	Name          string
	TimesTargeted int
	ByAttacker    map[string]int
	ByBucket      map[CampBucket]int // attacker's camp bucket
	GamesTargeted int
	Pressure      float64 // times targeted per game targeted in
	TopAttacker   string
}

// VotingBehavior is the cross-game voting aggregation.
type VotingBehavior struct {
	Players []PlayerVotingStats
	Targets []TargetStats
}

// PlayerDetails is one enriched player row of a game detail view.
type PlayerDetails struct {
	Username    string
	Role        Role
	FinalRole   Role
	Camp        Camp
	Victorious  bool
	DeathTiming string
	DeathType   DeathType
	KillerName  string
	VoteCount   int
	Abstentions int
}

// GameDetails is the canonical enriched per-game representation handed to
// the presentation layer.
type GameDetails struct {
	DisplayID      string
	StartedAt      time.Time
	EndedAt        time.Time
	MapName        string
	Modded         bool
	Version        string
	HarvestGoal    int
	HarvestDone    int
	HarvestPercent float64
	Days           int
	EndTiming      string
	WinningCamp    Camp
	Players        []PlayerDetails
}

// GameSummary is a lightweight record for list commands.
type GameSummary struct {
	DisplayID   string
	StartedAt   time.Time
	MapName     string
	Days        int
	WinningCamp Camp
	PlayerCount int
	Modded      bool
	Version     string
}
