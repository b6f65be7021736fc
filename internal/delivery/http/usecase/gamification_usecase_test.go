package usecase

import (
	"context"
	"testing"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnSubmissionCompletedCreditsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()

	sub := f.submission(user, entity.DifficultyHard, withRating(5), withProcessing(150_000))

	credit, err := f.gamification.OnSubmissionCompleted(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, credit.Duplicate)
	assert.Equal(t, 35, credit.Points)
	assert.Equal(t, 2, credit.Minutes)
	assert.Equal(t, 1, credit.CurrentStreak)

	p := f.progress(user)
	assert.Equal(t, 1, p.ProblemsSolved)
	assert.Equal(t, 2, p.StudyMinutes)
	assert.Equal(t, 35, p.TotalPoints)
	assert.Equal(t, 35, p.ExperiencePoints)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	assert.Equal(t, "2026-03-10", p.LastActivityDate)
	assert.Equal(t, []string{"Mathematics"}, []string(p.SubjectsStudied))

	stored, err := f.subRepo.FindByID(f.db, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, stored.PointsAwarded)
	assert.NotNil(t, stored.CreditedAt)

	activity, err := f.progressRepo.FindRecentActivity(f.db, user, 5)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, 1, activity[0].ProblemsSolved)
	assert.Equal(t, 35, activity[0].PointsEarned)
}

func TestOnSubmissionCompletedIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()
	sub := f.submission(user, entity.DifficultyMedium)

	_, err := f.gamification.OnSubmissionCompleted(ctx, sub.ID)
	require.NoError(t, err)

	again, err := f.gamification.OnSubmissionCompleted(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Equal(t, 20, again.Points)

	p := f.progress(user)
	assert.Equal(t, 1, p.ProblemsSolved)
	assert.Equal(t, 20, p.TotalPoints)
}

func TestOnSubmissionCompletedRejectsUnfinished(t *testing.T) {
	f := newFixture(t)
	user := f.profile()
	sub := f.submission(user, entity.DifficultyEasy, withStatus(entity.StatusProcessing))

	_, err := f.gamification.OnSubmissionCompleted(context.Background(), sub.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOnSubmissionCompletedUnknownUser(t *testing.T) {
	f := newFixture(t)
	sub := f.submission(uuid.New(), entity.DifficultyEasy)

	_, err := f.gamification.OnSubmissionCompleted(context.Background(), sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOnSubmissionCompletedUnknownSubmission(t *testing.T) {
	f := newFixture(t)

	_, err := f.gamification.OnSubmissionCompleted(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLevelFollowsExperience(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()

	// 20 x 30 = 600 xp -> floor(sqrt(6)) + 1 = 3
	for range 20 {
		sub := f.submission(user, entity.DifficultyHard)
		_, err := f.gamification.OnSubmissionCompleted(ctx, sub.ID)
		require.NoError(t, err)
	}

	p := f.progress(user)
	assert.Equal(t, 600, p.ExperiencePoints)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, LevelForExperience(p.ExperiencePoints), p.Level)
}

func TestStreakAcrossDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()

	complete := func() *LedgerCredit {
		sub := f.submission(user, entity.DifficultyEasy)
		credit, err := f.gamification.OnSubmissionCompleted(ctx, sub.ID)
		require.NoError(t, err)
		return credit
	}

	assert.Equal(t, 1, complete().CurrentStreak)
	assert.Equal(t, 1, complete().CurrentStreak) // same day
	f.clock.advanceDays(1)
	assert.Equal(t, 2, complete().CurrentStreak)
	f.clock.advanceDays(1)
	assert.Equal(t, 3, complete().CurrentStreak)

	// skip two days
	f.clock.advanceDays(3)
	assert.Equal(t, 1, complete().CurrentStreak)

	p := f.progress(user)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 3, p.LongestStreak)

	// today not studied yet: yesterday's run still counts
	f.clock.advanceDays(1)
	res, err := f.gamification.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentStreak)

	f.clock.advanceDays(1)
	res, err = f.gamification.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CurrentStreak)
	assert.Equal(t, 3, res.LongestStreak)
}

func TestGetProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()

	res, err := f.gamification.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 100, res.NextLevelExperience)
	assert.Empty(t, res.RecentActivity)

	sub := f.submission(user, entity.DifficultyMedium)
	_, err = f.gamification.OnSubmissionCompleted(ctx, sub.ID)
	require.NoError(t, err)

	res, err = f.gamification.GetProgress(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 20, res.TotalPoints)
	require.Len(t, res.RecentActivity, 1)
	assert.Equal(t, "2026-03-10", res.RecentActivity[0].Date)

	_, err = f.gamification.GetProgress(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstStepsUnlocksOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()
	first := f.achievement("First Steps", `{"problems_solved": 1}`, 10)

	credit, err := f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyMedium).ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, credit.Awarded)

	p := f.progress(user)
	assert.Equal(t, 30, p.TotalPoints)
	assert.Equal(t, 30, p.ExperiencePoints)

	credit, err = f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyMedium).ID)
	require.NoError(t, err)
	assert.Empty(t, credit.Awarded)
	assert.Equal(t, 50, f.progress(user).TotalPoints)

	rows, err := f.achRepo.FindUserAchievements(f.db, user)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsCompleted)
	assert.Equal(t, 10, rows[0].PointsEarned)
	assert.NotNil(t, rows[0].UnlockedAt)
	require.NotNil(t, rows[0].Achievement)
	assert.Equal(t, "First Steps", rows[0].Achievement.Name)
}

func TestAchievementCriteria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()

	mystery := f.achievement("Mystery", `{"moon_phase": 1}`, 100)
	both := f.achievement("Well Rounded", `{"problems_solved": 2, "distinct_subjects": 2}`, 5)

	credit, err := f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyEasy).ID)
	require.NoError(t, err)
	assert.Empty(t, credit.Awarded)

	// two problems but still one subject
	credit, err = f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyEasy).ID)
	require.NoError(t, err)
	assert.Empty(t, credit.Awarded)

	credit, err = f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyEasy, withSubject("Physics")).ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{both.ID}, credit.Awarded)

	completed, err := f.achRepo.CompletedAchievementIDs(f.db, user)
	require.NoError(t, err)
	assert.False(t, completed[mystery.ID])
}

func TestCheckAndAwardFiveStarRatings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()
	fan := f.achievement("Fan", `{"five_star_ratings": 2}`, 15)

	f.submission(user, entity.DifficultyEasy, withRating(5))
	f.submission(user, entity.DifficultyEasy, withRating(4))
	// unfinished work does not count, however it was rated
	f.submission(user, entity.DifficultyEasy, withStatus(entity.StatusPending), withRating(5))
	f.submission(user, entity.DifficultyEasy, withStatus(entity.StatusProcessing), withRating(5))

	awarded, err := f.gamification.CheckAndAward(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	f.submission(user, entity.DifficultyEasy, withStatus(entity.StatusArchived), withRating(5))

	awarded, err = f.gamification.CheckAndAward(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fan.ID}, awarded)
	assert.Equal(t, 15, f.progress(user).TotalPoints)

	awarded, err = f.gamification.CheckAndAward(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestMarathonUsesDailyLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()
	marathon := f.achievement("Marathon", `{"max_problems_in_one_day": 3}`, 20)

	for i := range 3 {
		credit, err := f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyEasy).ID)
		require.NoError(t, err)
		if i < 2 {
			assert.Empty(t, credit.Awarded)
		} else {
			assert.Equal(t, []uuid.UUID{marathon.ID}, credit.Awarded)
		}
	}
}

func TestAchievementPointsDoNotChainInOnePass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.profile()
	f.achievement("First Steps", `{"problems_solved": 1}`, 100)
	rich := f.achievement("Rich", `{"total_points": 50}`, 5)

	credit, err := f.gamification.OnSubmissionCompleted(ctx, f.submission(user, entity.DifficultyEasy).ID)
	require.NoError(t, err)
	assert.Len(t, credit.Awarded, 1)

	// the next pass sees the first achievement's points
	awarded, err := f.gamification.CheckAndAward(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{rich.ID}, awarded)
}

func TestUpsertProfileAndListAchievements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := uuid.New()

	res, err := f.gamification.UpsertProfile(ctx, user, entity.UpsertProfileRequest{DisplayName: "Ana", GradeLevel: "middle"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", res.DisplayName)

	_, err = f.gamification.UpsertProfile(ctx, user, entity.UpsertProfileRequest{DisplayName: "Ana B", GradeLevel: "high"})
	require.NoError(t, err)

	p, err := f.progressRepo.FindProfile(f.db, user)
	require.NoError(t, err)
	assert.Equal(t, "Ana B", p.DisplayName)
	assert.Equal(t, "high", p.GradeLevel)

	f.achievement("First Steps", `{"problems_solved": 1}`, 10)
	inactive := f.achievement("Hidden", `{"problems_solved": 1}`, 10)
	inactive.IsActive = false
	require.NoError(t, f.db.Save(inactive).Error)

	list, err := f.gamification.ListAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, map[string]int{"problems_solved": 1}, list[0].Criteria)
}

