package service

// Quest is a small repeatable activity worth streak points. The catalog is
// fixed; completing a quest is recorded only as points and a notification,
// so the same quest can be completed again later.
type Quest struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardPoints int    `json:"reward_points"`
}

const defaultQuestPoints = 10

var quests = []Quest{
	{ID: 1, Title: "First Application", Description: "Submit your first job application", RewardPoints: 10},
	{ID: 2, Title: "Networking Pro", Description: "Reach out to 3 contacts", RewardPoints: 25},
	{ID: 3, Title: "CV Optimizer", Description: "Analyze your CV against a job description", RewardPoints: 15},
	{ID: 4, Title: "Week Warrior", Description: "Complete your weekly goals", RewardPoints: 50},
}

// Quests returns the quest catalog.
func Quests() []Quest {
	out := make([]Quest, len(quests))
	copy(out, quests)
	return out
}

// QuestPoints returns the points for a quest ID. Unknown IDs are still
// worth the default so clients with a newer catalog keep working.
func QuestPoints(id int) int {
	for _, q := range quests {
		if q.ID == id {
			return q.RewardPoints
		}
	}
	return defaultQuestPoints
}
