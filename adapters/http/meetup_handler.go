package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	meetupUC "github.com/khoahotran/meetapp/internal/application/usecase/meetup"
	"github.com/khoahotran/meetapp/pkg/apperror"
	"github.com/khoahotran/meetapp/pkg/logger"
)

type MeetupHandler struct {
	listMeetupsUC *meetupUC.ListMeetupsUseCase
	getMeetupUC   *meetupUC.GetMeetupUseCase
	logger        logger.Logger
	now           func() time.Time
}

func NewMeetupHandler(listUC *meetupUC.ListMeetupsUseCase, getUC *meetupUC.GetMeetupUseCase, log logger.Logger) *MeetupHandler {
	return &MeetupHandler{listMeetupsUC: listUC, getMeetupUC: getUC, logger: log, now: time.Now}
}

func (h *MeetupHandler) ListMeetups(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(meetupUC.DefaultPageSize)))

	output, err := h.listMeetupsUC.Execute(c.Request.Context(), meetupUC.ListMeetupsInput{
		OrganizerID: userID,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	now := h.now()
	dtos := make([]MeetupDTO, len(output.Meetups))
	for i, m := range output.Meetups {
		dtos[i] = ToMeetupDTO(m, now)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *MeetupHandler) GetMeetup(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid meetup ID", err))
		return
	}

	m, err := h.getMeetupUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToMeetupDTO(m, h.now()))
}
