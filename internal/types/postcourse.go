package types

// Grade is the overall course grade band.
type Grade string

// Grade bands over average score: EXCELLENT >= 85, GOOD [70, 85),
// AVERAGE [50, 70), NEEDS_IMPROVEMENT < 50.
const (
	GradeExcellent        Grade = "EXCELLENT"
	GradeGood             Grade = "GOOD"
	GradeAverage          Grade = "AVERAGE"
	GradeNeedsImprovement Grade = "NEEDS_IMPROVEMENT"
)

// Summary is the narrative course wrap-up.
type Summary struct {
	Overview       string   `json:"overview"`
	WhatYouLearned []string `json:"whatYouLearned"`
	SkillsGained   []string `json:"skillsGained"`
	NextSteps      []string `json:"nextSteps"`
}

// KeyPointGroup is one category of key takeaways.
type KeyPointGroup struct {
	Category string   `json:"category"`
	Points   []string `json:"points"`
}

// Analytics holds the projected course analytics. TimeSpentTotal equals
// TimeSpentLessons + TimeSpentQuizzes and Grade is consistent with
// AverageScore per the fixed banding; both are enforced by the repair
// pass after generation.
type Analytics struct {
	TimeSpentTotal   float64 `json:"timeSpentTotal"`
	TimeSpentLessons float64 `json:"timeSpentLessons"`
	TimeSpentQuizzes float64 `json:"timeSpentQuizzes"`
	AverageScore     float64 `json:"averageScore"`
	TotalQuizzes     int     `json:"totalQuizzes"`
	PassedQuizzes    int     `json:"passedQuizzes"`
	Grade            Grade   `json:"grade"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	QuizzesCompleted int     `json:"quizzesCompleted"`
	TotalLessons     int     `json:"totalLessons"`
}

// PostCourseArtifacts is the stage-5 artifact: summary, key points and
// analytics for the whole course.
type PostCourseArtifacts struct {
	Summary   Summary         `json:"summary"`
	KeyPoints []KeyPointGroup `json:"keyPoints"`
	Analytics Analytics       `json:"analytics"`
}
