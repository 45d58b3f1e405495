package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case []GameItem:
		o.printGameItems(v)
	case VillagerDetails:
		o.printVillagerDetails(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID         string           `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	Role       string           `json:"role"`
	HighScores map[string]int64 `json:"highScores,omitempty"`
}

// AuthResult combines user and token
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ScoreEntry response type
type ScoreEntry struct {
	Username string    `json:"username"`
	Score    int64     `json:"score"`
	Date     time.Time `json:"date"`
	IsGuest  bool      `json:"isGuest,omitempty"`
}

// Leaderboard response type
type Leaderboard struct {
	Category string       `json:"category"`
	Scores   []ScoreEntry `json:"scores"`
}

// SubmitResult response type
type SubmitResult struct {
	Accepted bool  `json:"accepted"`
	NewBest  int64 `json:"newBest"`
}

// GameItem response type
type GameItem struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	IconURL  string `json:"icon_url,omitempty"`
}

// VillagerDetails response type
type VillagerDetails struct {
	Name        string `json:"name"`
	Quote       string `json:"quote,omitempty"`
	Personality string `json:"personality,omitempty"`
	Birthday    string `json:"birthday,omitempty"`
	Species     string `json:"species,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	if len(u.HighScores) > 0 {
		fmt.Println("High scores:")
		for cat, best := range u.HighScores {
			fmt.Printf("  %s: %d\n", cat, best)
		}
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard: %s\n", l.Category)
	if len(l.Scores) == 0 {
		fmt.Println("  (no scores yet)")
		return
	}
	for i, entry := range l.Scores {
		guestStr := ""
		if entry.IsGuest {
			guestStr = " [guest]"
		}
		fmt.Printf("  %2d. %-20s %6d  %s%s\n",
			i+1, entry.Username, entry.Score,
			entry.Date.Format("2006-01-02"), guestStr)
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	if r.Accepted {
		fmt.Printf("New best: %d\n", r.NewBest)
	} else {
		fmt.Printf("Not a new best (current best: %d)\n", r.NewBest)
	}
}

func (o *Output) printGameItems(items []GameItem) {
	fmt.Printf("Items (%d):\n", len(items))
	for _, item := range items {
		fmt.Printf("  - %s\n", item.Name)
	}
}

func (o *Output) printVillagerDetails(v VillagerDetails) {
	fmt.Printf("Villager: %s\n", v.Name)
	if v.Species != "" {
		fmt.Printf("Species: %s\n", v.Species)
	}
	if v.Personality != "" {
		fmt.Printf("Personality: %s\n", v.Personality)
	}
	if v.Birthday != "" {
		fmt.Printf("Birthday: %s\n", v.Birthday)
	}
	if v.Quote != "" {
		fmt.Printf("Quote: %q\n", v.Quote)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
