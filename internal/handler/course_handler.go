package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"furari/internal/domain/model"
	"furari/internal/usecase"
)

// リクエストパラメータの許容範囲
const (
	minRadiusMeters    = 100
	maxRadiusMeters    = 5000
	minDurationMinutes = 30
	maxDurationMinutes = 720
)

// CourseHandler はコース生成APIのハンドラー
type CourseHandler struct {
	courseUseCase usecase.CourseUseCase
}

// NewCourseHandler は新しいCourseHandlerインスタンスを作成
func NewCourseHandler(courseUseCase usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{
		courseUseCase: courseUseCase,
	}
}

// PostCourses はコース生成エンドポイント
// POST /api/courses
func (h *CourseHandler) PostCourses(c *gin.Context) {
	var req model.CourseRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.courseUseCase.GenerateCourses(c.Request.Context(), &req)
	if err != nil {
		// エラーメッセージから404か500かを判定
		if strings.Contains(err.Error(), "見つかりませんでした") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "条件に合う結果が見つかりませんでした",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "コースの生成に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *CourseHandler) validateRequest(req *model.CourseRequest) error {
	if req.Query == "" && !req.HasLocation() {
		return &ValidationError{Field: "query", Message: "queryまたはlocationのいずれかを指定してください"}
	}

	if req.HasLocation() {
		if req.Location.Latitude < -90 || req.Location.Latitude > 90 {
			return &ValidationError{Field: "location.latitude", Message: "緯度は-90から90の範囲で指定してください"}
		}
		if req.Location.Longitude < -180 || req.Location.Longitude > 180 {
			return &ValidationError{Field: "location.longitude", Message: "経度は-180から180の範囲で指定してください"}
		}
	}

	if req.RadiusMeters < minRadiusMeters || req.RadiusMeters > maxRadiusMeters {
		return &ValidationError{Field: "radius_meters", Message: "検索半径は100から5000mの範囲で指定してください"}
	}

	if req.DurationMinutes < minDurationMinutes || req.DurationMinutes > maxDurationMinutes {
		return &ValidationError{Field: "duration_minutes", Message: "所要時間は30から720分の範囲で指定してください"}
	}

	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// GetHealth はヘルスチェックエンドポイント
// GET /api/health
func (h *CourseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "furari",
	})
}
