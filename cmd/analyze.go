package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/aggregator"
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
)

const analyzeSystemPrompt = `You are an analyst for Lycans, a social-deduction game in the werewolf
family. You are given structured statistics from a game-log tool and a
question from a player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise. Focus on patterns the player can actually act on.

Glossary:
- Camps: Villageois (village), Loup (wolves, includes Traître and Louveteau),
  Amoureux (lovers), plus solo roles that each form their own camp
  (Agent, Espion, Scientifique, La Bête, Chasseur de primes, Vaudou, Zombie).
- Death timing: J3 = day 3, N2 = night 2, M1 = meeting 1.
- Death causes: VOTE, LOUP, CHASSEUR, BETE, POTION, ASSASSINAT, FAMINE,
  CHUTE, AVATAR, ECRASE, INCONNU. VOTE, FAMINE, CHUTE and AVATAR are never
  credited to a killer.
- Meeting survival: share of attended meetings a player was not voted out at.
- Vote pressure: votes received per game in which the player was targeted.
- Harvest: resource completion percentage at game end.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <username> <question>",
	Short: "Analyze a player's cross-game stats with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

var analyzeGameCmd = &cobra.Command{
	Use:   "game <game-id> <question>",
	Short: "Analyze a single game with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeGame,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")

	addFilterFlags(analyzePlayerCmd)

	analyzeCmd.AddCommand(analyzePlayerCmd)
	analyzeCmd.AddCommand(analyzeGameCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if flagPlayer == "" {
		flagPlayer = name
	}
	games, err := loadGames(db, cfg)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("no games found for %s (after filters)", name)
	}

	opts := campOptions(cfg)
	contextJSON, err := buildPlayerContext(name, games, opts)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

func runAnalyzeGame(cmd *cobra.Command, args []string) error {
	ref, question := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	game, err := db.GetGameByDisplayID(ref)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("no game found for %q", ref)
	}

	contextJSON, err := buildGameContext(game, campOptions(cfg))
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildPlayerContext serialises one player's cross-game record into compact JSON.
func buildPlayerContext(name string, games []model.GameLogEntry, opts roles.Options) (string, error) {
	campGames := make(map[string]int)
	campWins := make(map[string]int)
	totalGames, totalWins := 0, 0
	for i := range games {
		p := games[i].Player(name)
		if p == nil {
			continue
		}
		camp := string(roles.PlayerCamp(p, opts))
		campGames[camp]++
		totalGames++
		if p.Victorious {
			campWins[camp]++
			totalWins++
		}
	}
	if totalGames == 0 {
		return "", fmt.Errorf("player %s appears in none of the selected games", name)
	}

	doc := map[string]interface{}{
		"subject":        "player",
		"player":         name,
		"games_analyzed": totalGames,
		"wins":           totalWins,
		"camp_games":     campGames,
		"camp_wins":      campWins,
	}

	deaths := aggregator.ComputeDeathStats(games, "", opts)
	for _, k := range deaths.Killers {
		if k.Name == name {
			doc["kills"] = map[string]interface{}{
				"total":          k.Kills,
				"unique_victims": k.UniqueVictims,
				"per_game":       k.AvgKillsPerGame,
				"by_cause":       k.ByType,
			}
			break
		}
	}
	for _, v := range deaths.Victims {
		if v.Name == name {
			doc["deaths"] = map[string]interface{}{
				"total":     v.Deaths,
				"by_cause":  v.ByType,
				"killed_by": v.KilledBy,
			}
			break
		}
	}

	survival := aggregator.ComputeMeetingSurvival(games, opts)
	for _, p := range survival.Players {
		if p.Name == name {
			doc["meetings"] = map[string]interface{}{
				"attended":     p.Participated,
				"voted_out":    p.Died,
				"survival_pct": p.SurvivalRate,
			}
			break
		}
	}

	behavior := aggregator.ComputeVotingBehavior(games, opts)
	for _, p := range behavior.Players {
		if p.Name == name {
			doc["voting"] = map[string]interface{}{
				"votes":             p.Votes,
				"abstentions":       p.Abstentions,
				"participation_pct": p.ParticipationRate,
				"top_target":        p.TopTarget,
				"distinct_targets":  p.DistinctTargets,
			}
			break
		}
	}
	for _, t := range behavior.Targets {
		if t.Name == name {
			doc["targeted"] = map[string]interface{}{
				"times":        t.TimesTargeted,
				"games":        t.GamesTargeted,
				"pressure":     t.Pressure,
				"top_attacker": t.TopAttacker,
			}
			break
		}
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// buildGameContext serialises a single game into compact JSON.
func buildGameContext(g *model.GameLogEntry, opts roles.Options) (string, error) {
	details := aggregator.BuildGameDetails(g, opts)

	type playerEntry struct {
		Name      string `json:"name"`
		Role      string `json:"role"`
		FinalRole string `json:"final_role,omitempty"`
		Camp      string `json:"camp"`
		Won       bool   `json:"won"`
		Death     string `json:"death,omitempty"`
		Cause     string `json:"cause,omitempty"`
		Killer    string `json:"killer,omitempty"`
		Votes     int    `json:"votes"`
		Abstained int    `json:"abstained"`
	}

	players := make([]playerEntry, 0, len(details.Players))
	for _, p := range details.Players {
		e := playerEntry{
			Name:      p.Username,
			Role:      string(p.Role),
			Camp:      string(p.Camp),
			Won:       p.Victorious,
			Death:     p.DeathTiming,
			Cause:     string(p.DeathType),
			Killer:    p.KillerName,
			Votes:     p.VoteCount,
			Abstained: p.Abstentions,
		}
		if p.FinalRole != p.Role {
			e.FinalRole = string(p.FinalRole)
		}
		players = append(players, e)
	}

	doc := map[string]interface{}{
		"subject":      "game",
		"game":         details.DisplayID,
		"date":         details.StartedAt.Format("02/01/2006"),
		"map":          details.MapName,
		"days":         details.Days,
		"winning_camp": string(details.WinningCamp),
		"players":      players,
		"meetings":     aggregator.AnalyzeGameVotes(g).Meetings,
	}
	if details.HarvestPercent >= 0 {
		doc["harvest_pct"] = details.HarvestPercent
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
