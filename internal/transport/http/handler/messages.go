package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mhimmo/internal/domain"
	"mhimmo/internal/messaging"
	"mhimmo/internal/transport/http/ez"
)

type MessageModule struct{ Deps }

type sendMessageIn struct {
	RecipientID string             `json:"recipient_id" binding:"required"`
	Content     string             `json:"content"`
	Type        domain.MessageType `json:"type"`
}

type messageOut struct {
	Message domain.Message `json:"message"`
}

type messagesOut struct {
	Messages []domain.Message `json:"messages"`
}

type markReadOut struct {
	Marked int `json:"marked"`
}

type conversationsOut struct {
	Conversations []messaging.Conversation `json:"conversations"`
	UnreadTotal   int                      `json:"unread_total"`
}

func (m MessageModule) MountAPI(_, authed *gin.RouterGroup) {
	log := m.logger()

	ez.RegisterAction(authed, ez.Action[sendMessageIn, messageOut]{
		Method: http.MethodPost,
		Path:   "/messages",
		Binder: ez.BindJSON,
		Auth:   true,
		Log:    log,
		Handler: func(c *gin.Context, caller domain.User, in *sendMessageIn) (messageOut, error) {
			if in.Type != "" && !in.Type.Valid() {
				return messageOut{}, ez.BadRequest("unknown message type " + string(in.Type))
			}
			msg, err := m.Messages.Send(c.Request.Context(), caller.ID, in.RecipientID, in.Content, in.Type)
			if err != nil {
				return messageOut{}, err
			}
			return messageOut{Message: msg}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, messagesOut]{
		Method: http.MethodGet,
		Path:   "/messages/:userId",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, caller domain.User, _ *struct{}) (messagesOut, error) {
			return messagesOut{Messages: m.Messages.Thread(caller.ID, c.Param("userId"))}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, markReadOut]{
		Method: http.MethodPost,
		Path:   "/messages/:userId/read",
		Binder: ez.BindNone,
		Auth:   true,
		Log:    log,
		Handler: func(c *gin.Context, caller domain.User, _ *struct{}) (markReadOut, error) {
			n, err := m.Messages.MarkThreadRead(c.Request.Context(), caller.ID, c.Param("userId"))
			if err != nil {
				return markReadOut{}, err
			}
			return markReadOut{Marked: n}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, conversationsOut]{
		Method: http.MethodGet,
		Path:   "/conversations",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(_ *gin.Context, caller domain.User, _ *struct{}) (conversationsOut, error) {
			convs, ok := m.Messages.Conversations(caller.ID)
			if !ok {
				return conversationsOut{}, ez.Unauthorized("unknown user")
			}
			return conversationsOut{Conversations: convs, UnreadTotal: m.Messages.UnreadTotal(caller.ID)}, nil
		},
	})
}
