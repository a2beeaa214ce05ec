package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wtchen/clubroll/internal/entity"
	"github.com/wtchen/clubroll/internal/service"
)

type MemberHandler struct {
	registrationService service.RegistrationService
}

func NewMemberHandler(registrationService service.RegistrationService) *MemberHandler {
	return &MemberHandler{registrationService: registrationService}
}

// ListMembers returns the whole roster ordered by sort order, for the
// admin management page.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.registrationService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// UpdateMember edits nickname, status, sort order or the admin flag.
// Absent fields stay untouched.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req entity.MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	member, err := h.registrationService.UpdateMember(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "member": member})
}
