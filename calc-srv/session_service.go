package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"calc-build-go/calc-go"
	"calc-build-go/model"

	"github.com/zeebo/blake3"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

var sessionSeq atomic.Uint64

// / NewSessionID derives an id from the requester, the time and a sequence
// / number, so two requests in the same nanosecond still differ.
func NewSessionID(remote string) string {
	h := blake3.New()
	h.WriteString(fmt.Sprintf("s:%s,%d,%d\n", remote, time.Now().UnixNano(), sessionSeq.Add(1)))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

func formatValue(v float64) string {
	return calc_go.FormatValue(v, -1)
}

func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func CreateSession(id string, acc float64, ttl time.Duration) (*model.Session, error) {
	now := time.Now().Unix()
	session := &model.Session{
		ID:              id,
		Value:           formatValue(acc),
		CreatedAt:       now,
		LastAccess:      now,
		ExpiredDuration: int64(ttl / time.Second),
	}
	if err := DB.Create(session).Error; err != nil {
		return nil, err
	}
	gSessionCache.Put(session)
	return session, nil
}

func LoadSession(id string) (*model.Session, error) {
	if session, ok := gSessionCache.Get(id); ok {
		return session, nil
	}
	var session model.Session
	if err := DB.Model(&model.Session{}).Where("`id` = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	gSessionCache.Put(&session)
	return &session, nil
}

// / EvalSession evaluates line against the stored accumulator and saves the
// / result along with a history row.
func EvalSession(id, line string) (*model.Session, calc_go.Diagnostics, error) {
	unlock := lockSession(id)
	defer unlock()

	session, err := LoadSession(id)
	if err != nil {
		return nil, nil, err
	}
	acc, err := parseValue(session.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("session %s: stored value '%s': %w", id, session.Value, err)
	}

	diags := calc_go.Diagnostics{}
	value := calc_go.NewEvaluator(&diags).Evaluate(acc, line)
	evalCalls.Add(1)
	diagnosticsReported.Add(int64(len(diags)))

	now := time.Now().Unix()
	session.Value = formatValue(value)
	session.Lines++
	session.LastAccess = now

	kinds := make([]string, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind.String())
	}
	entry := &model.SessionLine{
		SessionID:   id,
		Line:        line,
		Value:       session.Value,
		Diagnostics: strings.Join(kinds, ","),
		CreatedAt:   now,
	}
	err = DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Session{}).Where("`id` = ?", id).Updates(map[string]interface{}{
			"value":       session.Value,
			"lines":       session.Lines,
			"last_access": session.LastAccess,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		gSessionCache.Evict(id)
		return nil, nil, err
	}
	gSessionCache.Put(session)
	return session, diags, nil
}

func FindSessionLines(id string) ([]*model.SessionLine, error) {
	if _, err := LoadSession(id); err != nil {
		return nil, err
	}
	var items []*model.SessionLine
	if err := DB.Model(&model.SessionLine{}).Where("`session_id` = ?", id).
		Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func CloseSession(id string) error {
	unlock := lockSession(id)
	defer unlock()
	gSessionCache.Evict(id)
	result := DB.Where("`id` = ?", id).Delete(&model.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
