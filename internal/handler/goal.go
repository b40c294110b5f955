package handler

import (
	"net/http"
	"strconv"

	"github.com/jobbuddy/api/internal/ctxkeys"
	"github.com/jobbuddy/api/internal/service"
)

type goalHandler struct {
	goalService   *service.GoalService
	streakService *service.StreakService
}

func NewGoalHandler(goalService *service.GoalService, streakService *service.StreakService) *goalHandler {
	return &goalHandler{
		goalService:   goalService,
		streakService: streakService,
	}
}

func (h *goalHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.Current(user.ID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"goal": goal})
}

type setTargetsRequest struct {
	ApplicationsGoal *int `json:"applications_goal"`
	OutreachGoal     *int `json:"outreach_goal"`
}

func (h *goalHandler) SetTargets(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req setTargetsRequest
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.SetTargets(user.ID, req.ApplicationsGoal, req.OutreachGoal)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Goals updated successfully",
		"goal":    goal,
	})
}

func (h *goalHandler) Streak(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	streak, err := h.streakService.Get(user.ID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"streak": streak})
}

func (h *goalHandler) Quests(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"quests": h.goalService.Quests()})
}

func (h *goalHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	questID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "quest id must be a number")
		return
	}

	points, err := h.goalService.CompleteQuest(user.ID, questID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	streak, err := h.streakService.Get(user.ID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message":       "Quest completed!",
		"points_earned": points,
		"streak":        streak,
	})
}
