package controller

import (
	"youthhub_backend/internal/service"
	"youthhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// @Summary 报名挑战
// @Description 重复报名视为成功；截止后不能再报名
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challengeId path int true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/challenges/{challengeId}/join [post]
func (c *ChallengeController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := parseIDParam(ctx, "challengeId")
	if !ok {
		return
	}

	joined, err := c.ChallengeService.Join(ctx.Request.Context(), user.UserID, challengeID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"challengeId": challengeID, "newlyJoined": joined})
}

// @Summary 提交挑战作品
// @Description 必须先报名；每人只能提交一次，提交后不可修改
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challengeId path int true "挑战ID"
// @Param submission body service.SubmissionInput true "提交内容"
// @Success 201 {object} util.Response{data=model.ChallengeSubmission}
// @Failure 409 {object} util.Response
// @Router /api/challenges/{challengeId}/submissions [post]
func (c *ChallengeController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := parseIDParam(ctx, "challengeId")
	if !ok {
		return
	}

	var req service.SubmissionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.ChallengeService.Submit(ctx.Request.Context(), user.UserID, challengeID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// @Summary 获取挑战状态
// @Description 当前学习者在挑战中的状态：not_joined / joined / submitted / won
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challengeId path int true "挑战ID"
// @Success 200 {object} util.Response{data=service.ChallengeStatus}
// @Router /api/challenges/{challengeId}/status [get]
func (c *ChallengeController) GetStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := parseIDParam(ctx, "challengeId")
	if !ok {
		return
	}

	status, err := c.ChallengeService.GetStatus(ctx.Request.Context(), user.UserID, challengeID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, status)
}

// @Summary 评定挑战获胜者
// @Description 教师或管理员评定获胜者，发放挑战积分；重复评定不会重复加分
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challengeId path int true "挑战ID"
// @Param learnerId path int true "学习者ID"
// @Success 200 {object} util.Response{data=service.WinnerOutcome}
// @Failure 403 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/challenges/{challengeId}/winners/{learnerId} [post]
func (c *ChallengeController) MarkWinner(ctx *gin.Context) {
	challengeID, ok := parseIDParam(ctx, "challengeId")
	if !ok {
		return
	}
	learnerID, ok := parseIDParam(ctx, "learnerId")
	if !ok {
		return
	}

	outcome, err := c.ChallengeService.MarkWinner(ctx.Request.Context(), learnerID, challengeID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}
