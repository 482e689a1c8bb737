package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server      Server      `toml:"server"`
	Database    Database    `toml:"database"`
	Logs        Logs        `toml:"logs"`
	Metrics     Metrics     `toml:"metrics"`
	FormService FormService `toml:"form_service"`
	Policy      Policy      `toml:"policy"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к БД
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// FormService настройки клиента сервиса форм бронирования
type FormService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Policy глобальные настройки политики изменений бронирований
type Policy struct {
	AllowCustomersToCancel         bool     `toml:"allow_customers_to_cancel"`
	AllowCustomersToReschedule     bool     `toml:"allow_customers_to_reschedule"`
	BookingChangesDeadline         int64    `toml:"booking_changes_deadline"`
	AdminRescheduleScope           string   `toml:"admin_reschedule_scope"`
	RefundActionsAfterCancellation []string `toml:"refund_actions_after_cancellation"`
	DefaultBookingStatus           string   `toml:"default_booking_status"`
	DefaultPaymentStatus           string   `toml:"default_payment_status"`
}

// ToDomain конвертирует настройки политики в доменную модель с
// нормализацией некорректных значений
func (p Policy) ToDomain() domain.PolicySettings {
	return domain.PolicySettings{
		AllowCustomersToCancel:         p.AllowCustomersToCancel,
		AllowCustomersToReschedule:     p.AllowCustomersToReschedule,
		BookingChangesDeadline:         p.BookingChangesDeadline,
		AdminRescheduleScope:           p.AdminRescheduleScope,
		RefundActionsAfterCancellation: p.RefundActionsAfterCancellation,
		Defaults: domain.Defaults{
			BookingStatus: domain.BookingStatus(p.DefaultBookingStatus),
			PaymentStatus: domain.PaymentStatus(p.DefaultPaymentStatus),
		},
	}.Sanitized()
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}
	return &cfg, nil
}
