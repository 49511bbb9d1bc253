package chatbot

import (
	"net/http"

	"guesthouse/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	{
		chat.GET("/greeting", h.Greeting)
		chat.GET("/quick-questions", h.QuickQuestions)
	}
}

// RegisterWriteRoutes mounts POST /chat; the caller decides on rate limiting.
func (h *Handler) RegisterWriteRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Ask)
}

// Ask godoc
// @Summary Ask the guesthouse assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Question"
// @Success 200 {object} response.Envelope{data=Reply}
// @Router /chat [post]
func (h *Handler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required")
		return
	}
	response.Success(c, http.StatusOK, h.service.Reply(c.Request.Context(), req.Message))
}

func (h *Handler) Greeting(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"text": Greeting})
}

func (h *Handler) QuickQuestions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"questions": QuickQuestions()})
}
