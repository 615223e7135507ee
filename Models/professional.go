package Models

import (
	"gorm.io/gorm"
)

type Professional struct {
	gorm.Model
	UserID              uint                 `json:"user_id"`
	Name                string               `json:"name"`
	Rut                 string               `json:"rut"`
	Title               string               `json:"title"`       // Psicólogo Clínico, Psiquiatra, Terapeuta
	Specialties         string               `json:"specialties"` // comma separated, e.g. "ansiedad,depresión"
	RegistryNumber      string               `json:"registry_number"`
	SessionPrice        float64              `json:"session_price"`
	AttendsOnline       bool                 `json:"attends_online"`
	AttendsInPerson     bool                 `json:"attends_in_person"`
	Bio                 string               `json:"bio"`
	PhotoUrl            string               `json:"photo_url"`
	Schedule            Schedule             `json:"schedule"`
	AppointmentRequests []AppointmentRequest `json:"requests"`
	IsFrozen            bool                 `json:"is_frozen" gorm:"-"`
}

type Schedule struct {
	gorm.Model
	ProfessionalID uint
	TimeBlocks     []TimeBlock `json:"time_blocks"`
}

type TimeBlock struct {
	gorm.Model
	ScheduleID  uint
	DateTime    string      `json:"date"`
	IsAvailable bool        `json:"is_available"`
	Appointment Appointment `gorm:"constraint:OnDelete:CASCADE;" json:"appointment"`
}

func CreateTimeBlock(schedule Schedule, appointment Appointment) TimeBlock {
	return TimeBlock{ScheduleID: schedule.ID, IsAvailable: false, DateTime: appointment.DateTime.Format(DateTimeLayout), Appointment: appointment}
}

func CreateEmptyTimeBlock(schedule Schedule, dateTime string) TimeBlock {
	return TimeBlock{ScheduleID: schedule.ID, IsAvailable: false, DateTime: dateTime}
}
