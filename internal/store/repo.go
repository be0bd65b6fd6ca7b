package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a row addressed by id or user does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrCourseInUse is returned when deleting a course that still owns cards.
	ErrCourseInUse = errors.New("store: course still has flashcards")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// CardRecord is a flashcard row. Dates are YYYY-MM-DD strings.
type CardRecord struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	CourseID     string    `db:"course_id"`
	Question     string    `db:"question"`
	Answer       string    `db:"answer"`
	Difficulty   string    `db:"difficulty"`
	NextReview   string    `db:"next_review"`
	ReviewCount  int       `db:"review_count"`
	LastReviewed *string   `db:"last_reviewed"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewCard holds the caller-supplied fields of a card to create.
// An empty NextReview defaults to the creation date.
type NewCard struct {
	CourseID   string
	Question   string
	Answer     string
	Difficulty string
	NextReview string
}

// CardPatch is a partial update; nil fields are left unchanged.
type CardPatch struct {
	Question     *string
	Answer       *string
	Difficulty   *string
	NextReview   *string
	ReviewCount  *int
	LastReviewed *string
}

// CardRepo persists flashcards per user.
type CardRepo interface {
	// ListCards returns every card of the user in creation order.
	ListCards(ctx context.Context, userID string) ([]CardRecord, error)

	// GetCard returns one card or ErrNotFound.
	GetCard(ctx context.Context, userID, id string) (CardRecord, error)

	// CreateCard assigns an id, sets review_count to 0 and returns the stored row.
	CreateCard(ctx context.Context, userID string, card NewCard) (CardRecord, error)

	// UpdateCard applies patch and returns the updated row, or ErrNotFound.
	UpdateCard(ctx context.Context, userID, id string, patch CardPatch) (CardRecord, error)

	// CountDue returns how many cards have next_review <= today.
	CountDue(ctx context.Context, userID, today string) (int, error)
}

// CourseRecord is a course row.
type CourseRecord struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	Icon      string    `db:"icon"`
	Goal      string    `db:"goal"`
	CreatedAt time.Time `db:"created_at"`
}

// NewCourse holds the caller-supplied fields of a course to create.
type NewCourse struct {
	Name  string
	Color string
	Icon  string
	Goal  string
}

// CourseRepo persists courses per user.
type CourseRepo interface {
	ListCourses(ctx context.Context, userID string) ([]CourseRecord, error)
	GetCourse(ctx context.Context, userID, id string) (CourseRecord, error)
	CreateCourse(ctx context.Context, userID string, course NewCourse) (CourseRecord, error)

	// DeleteCourse refuses with ErrCourseInUse while cards reference the course.
	DeleteCourse(ctx context.Context, userID, id string) error
}

// ProfileRecord is a user profile row.
type ProfileRecord struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Gender      string    `db:"gender"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ProfileRepo persists one profile per user.
type ProfileRepo interface {
	GetProfile(ctx context.Context, userID string) (ProfileRecord, error)
	SaveProfile(ctx context.Context, p ProfileRecord) (ProfileRecord, error)
}

// CompanionRecord is the companion's persisted state.
type CompanionRecord struct {
	UserID          string     `db:"user_id"`
	Funds           int        `db:"funds"`
	BusTickets      int        `db:"bus_tickets"`
	Mood            string     `db:"mood"`
	LastInteraction *time.Time `db:"last_interaction"`
	Outfits         StringList `db:"outfits"`
	CurrentOutfit   string     `db:"current_outfit"`
}

// CompanionRepo persists one companion per user.
type CompanionRepo interface {
	GetCompanion(ctx context.Context, userID string) (CompanionRecord, error)
	SaveCompanion(ctx context.Context, c CompanionRecord) error
}

// StatsRecord holds the study streak and counters of a user.
type StatsRecord struct {
	UserID        string  `db:"user_id"`
	CurrentStreak int     `db:"current_streak"`
	LongestStreak int     `db:"longest_streak"`
	LastStudyDate *string `db:"last_study_date"`
	TotalReviews  int     `db:"total_reviews"`
	TotalSessions int     `db:"total_sessions"`
	StudyMinutes  int     `db:"study_minutes"`
}

// StatsRepo persists one stats row per user.
type StatsRepo interface {
	GetStats(ctx context.Context, userID string) (StatsRecord, error)
	SaveStats(ctx context.Context, st StatsRecord) error
}

// RewardEventData captures one companion award.
type RewardEventData struct {
	UserID    string
	SessionID string
	AwardType string
	Amount    int
	Reason    string
}

// RewardEventRecord is a stored award with its global sequence.
type RewardEventRecord struct {
	Sequence  int64     `db:"sequence"`
	Timestamp time.Time `db:"timestamp"`
	UserID    string    `db:"user_id"`
	SessionID string    `db:"session_id"`
	AwardType string    `db:"award_type"`
	Amount    int       `db:"amount"`
	Reason    string    `db:"reason"`
}

// SessionEventData captures a review session start or end.
type SessionEventData struct {
	UserID        string
	SessionID     string
	Action        string // "start" or "end"
	CardsDue      int
	CardsReviewed int
	DurationSecs  int
}

// SessionSummaryRecord is a finished session as stored by its end event.
type SessionSummaryRecord struct {
	Sequence      int64     `db:"sequence"`
	Timestamp     time.Time `db:"timestamp"`
	SessionID     string    `db:"session_id"`
	CardsDue      int       `db:"cards_due"`
	CardsReviewed int       `db:"cards_reviewed"`
	DurationSecs  int       `db:"duration_secs"`
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendRewardEvent(ctx context.Context, data RewardEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryRewardEvents returns the user's awards, newest first.
	QueryRewardEvents(ctx context.Context, userID string, opts QueryOpts) ([]RewardEventRecord, error)

	// RewardTotals sums award amounts per award type.
	RewardTotals(ctx context.Context, userID string) (map[string]int, error)

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, userID string, opts QueryOpts) ([]SessionSummaryRecord, error)
}

// StudySessionRecord is a logged study session. Date is YYYY-MM-DD.
type StudySessionRecord struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	CourseID        string    `db:"course_id"`
	Date            string    `db:"date"`
	DurationMinutes int       `db:"duration_minutes"`
	Notes           string    `db:"notes"`
	Reflection      string    `db:"reflection"`
	Mood            int       `db:"mood"`
	FocusRating     int       `db:"focus_rating"`
	CreatedAt       time.Time `db:"created_at"`
}

// NewStudySession holds the fields of a study session to log.
type NewStudySession struct {
	CourseID        string
	Date            string
	DurationMinutes int
	Notes           string
	Reflection      string
	Mood            int
	FocusRating     int
}

// StudySessionFilter narrows ListStudySessions. Zero fields match everything.
type StudySessionFilter struct {
	CourseID string
	From     string // date >= From
	Limit    int
}

// StudyTotals counts sessions and minutes.
type StudyTotals struct {
	Sessions int `db:"sessions"`
	Minutes  int `db:"minutes"`
}

// StudySessionRepo persists logged study sessions per user.
type StudySessionRepo interface {
	CreateStudySession(ctx context.Context, userID string, s NewStudySession) (StudySessionRecord, error)

	// ListStudySessions returns sessions newest first.
	ListStudySessions(ctx context.Context, userID string, f StudySessionFilter) ([]StudySessionRecord, error)

	// StudyTotalsByCourse sums sessions and minutes per course id.
	StudyTotalsByCourse(ctx context.Context, userID string) (map[string]StudyTotals, error)

	// StudyTotalsSince sums sessions and minutes on or after the date from.
	StudyTotalsSince(ctx context.Context, userID, from string) (StudyTotals, error)
}

// GoalRecord is a study goal row.
type GoalRecord struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	CourseID    *string   `db:"course_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	TargetDate  *string   `db:"target_date"`
	Completed   bool      `db:"completed"`
	Progress    int       `db:"progress"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewGoal holds the fields of a goal to create.
type NewGoal struct {
	CourseID    *string
	Title       string
	Description string
	TargetDate  *string
	Progress    int
}

// GoalPatch is a partial update; nil fields are left unchanged.
type GoalPatch struct {
	Title       *string
	Description *string
	TargetDate  *string
	Completed   *bool
	Progress    *int
}

// GoalRepo persists goals per user.
type GoalRepo interface {
	// ListGoals returns goals in creation order.
	ListGoals(ctx context.Context, userID string) ([]GoalRecord, error)
	GetGoal(ctx context.Context, userID, id string) (GoalRecord, error)
	CreateGoal(ctx context.Context, userID string, g NewGoal) (GoalRecord, error)
	UpdateGoal(ctx context.Context, userID, id string, patch GoalPatch) (GoalRecord, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

// LearningRecord is a daily-learning note row.
type LearningRecord struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	CourseID  *string    `db:"course_id"`
	Date      string     `db:"date"`
	Content   string     `db:"content"`
	Tags      StringList `db:"tags"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// NewLearning holds the fields of a note to create.
type NewLearning struct {
	CourseID *string
	Date     string
	Content  string
	Tags     []string
}

// LearningFilter narrows ListLearnings. Zero fields match everything.
type LearningFilter struct {
	CourseID string
	Tag      string
	Limit    int
}

// LearningRepo persists daily-learning notes per user.
type LearningRepo interface {
	// ListLearnings returns notes newest first.
	ListLearnings(ctx context.Context, userID string, f LearningFilter) ([]LearningRecord, error)
	CreateLearning(ctx context.Context, userID string, l NewLearning) (LearningRecord, error)
	DeleteLearning(ctx context.Context, userID, id string) error
}
