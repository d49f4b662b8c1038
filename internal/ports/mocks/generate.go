//go:generate mockgen -source=../order_platform.go   -destination=./mock_order_platform.go   -package=mocks
//go:generate mockgen -source=../file_storage.go     -destination=./mock_file_storage.go     -package=mocks
//go:generate mockgen -source=../email_sender.go     -destination=./mock_email_sender.go     -package=mocks
//go:generate mockgen -source=../file_resolver.go    -destination=./mock_file_resolver.go    -package=mocks
//go:generate mockgen -source=../resolution_cache.go -destination=./mock_resolution_cache.go -package=mocks

package mocks
