package main

import (
	"log"
	"time"

	"calc-build-go/model"

	"github.com/tevino/abool/v2"
)

const kCleanBatch = 2000

var cleanRunning = abool.New()

func cleanTask() {
	if !cleanRunning.SetToIf(false, true) {
		return
	}
	defer cleanRunning.UnSet()
	for {
		expired, err := FindExpiredSessionsWithLimit(kCleanBatch)
		if err != nil {
			log.Printf("clean: %v", err)
			return
		}
		if len(expired) == 0 {
			return
		}
		ids := make([]string, 0, len(expired))
		for _, session := range expired {
			ids = append(ids, session.ID)
		}
		gSessionCache.Evict(ids...)
		if err := UpdateExpiredCleanResult(ids); err != nil {
			log.Printf("clean: %v", err)
			return
		}
		sessionsExpired.Add(int64(len(ids)))
		log.Printf("clean: expired %d sessions", len(ids))
		if len(expired) < kCleanBatch {
			return
		}
	}
}

func FindExpiredSessionsWithLimit(limit int) ([]*model.Session, error) {
	var expired []*model.Session
	now := time.Now().Unix()
	if err := DB.Model(&model.Session{}).Where("`last_access`+`expired_duration` < ?", now).
		Limit(limit).Find(&expired).Error; err != nil {
		return nil, err
	}
	return expired, nil
}

func UpdateExpiredCleanResult(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return DB.Where("`id` IN ?", ids).Delete(&model.Session{}).Error
}
