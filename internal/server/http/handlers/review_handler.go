package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// ReviewHandler accepts reviews and lists them per vendor.
type ReviewHandler struct {
	facade ReviewFacade
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(facade ReviewFacade) *ReviewHandler {
	return &ReviewHandler{facade: facade}
}

// Submit handles POST /api/student/reviews.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide order, rating and comment")
		return
	}
	review, err := h.facade.SubmitReview(c.Request.Context(), CurrentAccountID(c), usecase.ReviewInput{
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewReviewResponse(*review))
}

// VendorReviews handles GET /api/student/vendors/:id/reviews.
func (h *ReviewHandler) VendorReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, id)
}

// OwnReviews handles GET /api/vendor/reviews.
func (h *ReviewHandler) OwnReviews(c *gin.Context) {
	h.list(c, CurrentAccountID(c))
}

func (h *ReviewHandler) list(c *gin.Context, vendorID int64) {
	page, err := h.facade.VendorReviews(c.Request.Context(), vendorID, pageQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewReviewResponse))
}
