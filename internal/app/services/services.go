package services

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - StudentService: student records keyed by national ID
// - ActivityService: append-only audit log of student changes
// - ProfileService: dual-store user profile and avatar handling
// - ChatService: relay to the hosted assistant endpoint
// - DashboardService: home screen aggregation
// - SettingsService: per-account application settings
// - ExportService: printable student documents
