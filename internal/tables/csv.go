package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var distHeader = []string{
	"Suit_1", "Suit_2", "Suit_3", "Suit_4",
	"Pr_suit_1", "Pr_suit_2", "Pr_suit_3", "Pr_suit_4",
	"Pr_10_1", "Pr_10_2", "Pr_10_3", "Pr_10_4",
}

var premiumHeader = []string{"Me", "Pl_2", "Pl_3", "Pl_4", "Pr_goal", "Weight", "Pot"}

// WriteDistCSV writes the distribution table in the GoalDist.csv layout.
func WriteDistCSV(w io.Writer, t *DistTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(distHeader); err != nil {
		return err
	}

	rec := make([]string, len(distHeader))
	for _, r := range t.rows {
		for i := 0; i < 4; i++ {
			rec[i] = strconv.Itoa(r.Counts[i])
			rec[4+i] = formatProb(r.Prob[i])
			rec[8+i] = formatProb(r.Prob10[i])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadDistCSV parses a GoalDist.csv stream.
func ReadDistCSV(r io.Reader) (*DistTable, error) {
	records, err := readAll(r, distHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]DistRow, 0, len(records))
	for n, rec := range records {
		var row DistRow
		for i := 0; i < 4; i++ {
			if row.Counts[i], err = strconv.Atoi(rec[i]); err != nil {
				return nil, fmt.Errorf("dist row %d: %w", n+1, err)
			}
			if row.Prob[i], err = strconv.ParseFloat(rec[4+i], 64); err != nil {
				return nil, fmt.Errorf("dist row %d: %w", n+1, err)
			}
			if row.Prob10[i], err = strconv.ParseFloat(rec[8+i], 64); err != nil {
				return nil, fmt.Errorf("dist row %d: %w", n+1, err)
			}
		}
		rows = append(rows, row)
	}
	return NewDistTable(rows), nil
}

// WritePremiumCSV writes the premium table in the GoalPremium.csv layout.
func WritePremiumCSV(w io.Writer, t *PremiumTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(premiumHeader); err != nil {
		return err
	}

	for _, r := range t.rows {
		rec := []string{
			strconv.Itoa(r.Me), strconv.Itoa(r.P2),
			strconv.Itoa(r.P3), strconv.Itoa(r.P4),
			formatProb(r.PrGoal), formatProb(r.Weight), formatProb(r.Pot),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadPremiumCSV parses a GoalPremium.csv stream.
func ReadPremiumCSV(r io.Reader) (*PremiumTable, error) {
	records, err := readAll(r, premiumHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]PremiumRow, 0, len(records))
	for n, rec := range records {
		var row PremiumRow
		if row.Me, err = strconv.Atoi(rec[0]); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.P2, err = strconv.Atoi(rec[1]); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.P3, err = strconv.Atoi(rec[2]); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.P4, err = strconv.Atoi(rec[3]); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.PrGoal, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.Weight, err = strconv.ParseFloat(rec[5], 64); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		if row.Pot, err = strconv.ParseFloat(rec[6], 64); err != nil {
			return nil, fmt.Errorf("premium row %d: %w", n+1, err)
		}
		rows = append(rows, row)
	}
	return NewPremiumTable(rows), nil
}

// LoadDistFile reads a GoalDist.csv from disk.
func LoadDistFile(path string) (*DistTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDistCSV(f)
}

// LoadPremiumFile reads a GoalPremium.csv from disk.
func LoadPremiumFile(path string) (*PremiumTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPremiumCSV(f)
}

func readAll(r io.Reader, wantHeader []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(wantHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	for i, h := range wantHeader {
		if header[i] != h {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], h)
		}
	}

	return cr.ReadAll()
}

func formatProb(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
