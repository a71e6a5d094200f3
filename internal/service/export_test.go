package service

import "time"

func SetReinvalidateDelay(s HospitalService, d time.Duration) {
	s.(*hospitalService).reinvalidateAfter = d
}
