package config

import (
	"fmt"
	"os"
)

const DB_NAME string = "conference-central"

const ANNOUNCEMENT_CACHE_KEY string = "RECENT_ANNOUNCEMENTS"
const FEATURED_SPEAKER_CACHE_KEY string = "FEATURED_SPEAKER"

const ANNOUNCEMENT_TPL string = "Last chance to attend! The following conferences are nearly sold out: %v"
const FEATURED_SPEAKER_TPL string = "These sessions will have our featured speaker %v: %v"

const DATE_LAYOUT string = "2006-01-02"
const TIME_LAYOUT string = "15:04:05"

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
