package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v3"
)

var ErrNoChat = errors.New("chat context is not available")

// IsAdmin reports whether userID administers the chat of c. Lookup
// failures count as "not admin".
func (b *Bot) IsAdmin(c tele.Context, userID int64) bool {
	chat := c.Chat()
	if chat == nil {
		b.log.Error(ErrNoChat.Error(), "Admin")
		return false
	}

	member, err := b.memberOf(chat, &tele.User{ID: userID})
	if err != nil {
		b.log.Error(fmt.Sprintf("Error checking admin status for user %d: %v", userID, err), "Admin")
		return false
	}
	if member == nil {
		return false
	}
	return IsAdminStatus(member.Role)
}

// IsAdminStatus is true for creators and administrators only. Members,
// restricted, left, kicked and unknown statuses are not admins.
func IsAdminStatus(s tele.MemberStatus) bool {
	switch s {
	case tele.Creator, tele.Administrator:
		return true
	}
	return false
}
