package controller

import (
	"youthhub_backend/internal/service"
	"youthhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseProgressionService
}

func NewCourseController(courseService *service.CourseProgressionService) *CourseController {
	return &CourseController{CourseService: courseService}
}

type QuizSubmitRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// @Summary 报名课程
// @Description 为当前学习者创建课程进度，重复报名返回已有进度
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.CourseService.Enroll(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 获取课程进度
// @Description 返回每个模块的状态（not_started / in_progress / completed）以及课程是否完成
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseProgressView}
// @Failure 409 {object} util.Response
// @Router /api/courses/{courseId}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	view, err := c.CourseService.GetProgress(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 完成模块
// @Description 手动完成没有测验的模块，全部模块完成后发放课程积分（只发一次）
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Param index path int true "模块序号（从0开始）"
// @Success 200 {object} util.Response{data=service.ModuleOutcome}
// @Failure 400 {object} util.Response
// @Router /api/courses/{courseId}/modules/{index}/complete [post]
func (c *CourseController) CompleteModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	index, ok := parseIndexParam(ctx)
	if !ok {
		return
	}

	outcome, err := c.CourseService.CompleteModule(ctx.Request.Context(), user.UserID, courseID, index)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}

// @Summary 提交模块测验
// @Description 按题目顺序提交答案下标，得分不低于及格线即完成模块；不限提交次数
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Param index path int true "模块序号（从0开始）"
// @Param answers body QuizSubmitRequest true "答案"
// @Success 200 {object} util.Response{data=service.QuizOutcome}
// @Failure 400 {object} util.Response
// @Router /api/courses/{courseId}/modules/{index}/quiz [post]
func (c *CourseController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}
	index, ok := parseIndexParam(ctx)
	if !ok {
		return
	}

	var req QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.CourseService.SubmitQuiz(ctx.Request.Context(), user.UserID, courseID, index, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "Invalid "+name+": "+err.Error())
		return 0, false
	}
	return id, true
}

func parseIndexParam(ctx *gin.Context) (int, bool) {
	index, err := util.ParseModuleIndex(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "Invalid module index: "+err.Error())
		return 0, false
	}
	return index, true
}
