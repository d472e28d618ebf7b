package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchRecord struct {
	ID      int
	Params  string
	Players string // Comma separated name:kind pairs
	Rounds  int
	Seed    uint64
}

type RoundRecord struct {
	Match int // MatchRecord.ID
	Round int
	RoundMetric
}

type MoveRecord struct {
	Match int // MatchRecord.ID
	Round int
	MoveMetric
}

type PlayerRecord struct {
	Match int // MatchRecord.ID
	Round int
	Name  string
	Kind  string
	PlayerMetric
}

type StandingRecord struct {
	Match int // MatchRecord.ID
	Standing
}

type Writer struct {
	baseDir string
}

// NewWriter creates outputDir/name/<timestamp> to hold the experiment's files.
func NewWriter(outputDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(outputDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{"id", "params", "players", "rounds", "seed"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Params,
			record.Players,
			strconv.Itoa(record.Rounds),
			strconv.FormatUint(record.Seed, 10),
		})
	}
	return w.write("match_configs.csv", header, rows)
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	header := []string{"match", "round", "starting_player", "bidder", "bid", "total", "won", "hands", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Bidder),
			record.Bid,
			strconv.Itoa(record.Total),
			strconv.FormatBool(record.Won),
			record.Hands,
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("round_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"match", "round", "step", "player", "action", "move", "is_rebid", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(int(record.Action)),
			record.Move,
			strconv.FormatBool(record.IsRebid),
			record.Duration.String(),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WritePlayerRecords(records []PlayerRecord) error {
	header := []string{"match", "round", "position", "player", "player_type", "hand", "hand_type", "reward", "is_last_bidder", "last_move_type"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		lastBidder := "no"
		if record.IsLastBidder {
			lastBidder = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Position),
			record.Name,
			record.Kind,
			record.Hand,
			record.HandKind,
			strconv.Itoa(record.Reward),
			lastBidder,
			record.LastMoveType,
		})
	}
	return w.write("player_records.csv", header, rows)
}

func (w *Writer) WriteStandings(records []StandingRecord) error {
	header := []string{"match", "player", "wins_by_bid", "losses_by_bid", "wins_by_challenge", "losses_by_challenge", "equity"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Match),
			record.Player,
			strconv.Itoa(record.WinsByBid),
			strconv.Itoa(record.LossesByBid),
			strconv.Itoa(record.WinsByChallenge),
			strconv.Itoa(record.LossesByChallenge),
			strconv.Itoa(record.Equity),
		})
	}
	return w.write("standings.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	if err = writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
