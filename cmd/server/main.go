package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hirwaf/task-management-be/internal/api"
	"github.com/hirwaf/task-management-be/internal/api/handlers"
	apimw "github.com/hirwaf/task-management-be/internal/api/middleware"
	"github.com/hirwaf/task-management-be/internal/infrastructure/auth"
	"github.com/hirwaf/task-management-be/internal/infrastructure/client"
	"github.com/hirwaf/task-management-be/internal/infrastructure/upload"
	"github.com/hirwaf/task-management-be/internal/repository"
	"github.com/hirwaf/task-management-be/internal/usecase"
	"github.com/hirwaf/task-management-be/internal/worker"
)

func main() {
	var wg sync.WaitGroup

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"))

	rabbitMQURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASSWORD"),
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"))

	// Запускаем миграции
	if err := runMigrations(dbURL); err != nil {
		log.Fatal("❌ Ошибка миграций:", err)
	}

	// Подключаемся к БД
	pg, err := client.NewPostgresClient(dbURL)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к БД:", err)
	}
	defer pg.Close()
	fmt.Println("✅ Подключение к БД установлено")

	// Подключаемся к RabbitMQ
	rabbitMQ, err := client.NewRabbitMQClient(rabbitMQURL)
	if err != nil {
		log.Fatal("❌ Ошибка подключения к RabbitMQ:", err)
	}
	defer rabbitMQ.Close()
	fmt.Println("✅ Подключение к RabbitMQ установлено")

	// Каталог для принятых файлов
	attachmentsDir := os.Getenv("ATTACHMENTS_DIR")
	if attachmentsDir == "" {
		attachmentsDir = "./attachments"
	}
	storage, err := upload.NewStorage(attachmentsDir)
	if err != nil {
		log.Fatal("❌ Ошибка создания каталога вложений:", err)
	}

	// Инициализируем репозитории
	userRepo := repository.NewUserRepository(pg.Pool)
	taskRepo := repository.NewTaskRepository(pg.Pool)
	attachmentRepo := repository.NewAttachmentRepository(pg.Pool)
	projectRepo := repository.NewProjectRepository(pg.Pool)
	taskAuditRepo := repository.NewTaskAuditRepository(pg.Pool)

	// Инициализируем сервисы
	passwordManager := auth.NewPasswordManager()
	jwtManager := auth.NewJWTManager()
	taskService := usecase.NewTaskService(taskRepo, attachmentRepo, projectRepo, rabbitMQ)
	userService := usecase.NewUserService(userRepo, passwordManager, jwtManager)
	exportService := usecase.NewExportService(taskRepo)

	// Запускаем воркер для обработки аудит-сообщений
	auditWorker := worker.NewAuditWorker(rabbitMQURL, taskAuditRepo)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		auditWorker.Start(workerCtx)
	}()

	// HTTP сервер
	taskHandler := handlers.NewTaskHandler(taskService, exportService, storage)
	userHandler := handlers.NewUserHandler(userService)
	limiter := apimw.NewRateLimiter(20, 40)
	router := api.NewRouter(taskHandler, userHandler, jwtManager, limiter)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fmt.Println("Запуск HTTP сервера на порту " + port + "...")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ HTTP server error: %v", err)
		}
	}()

	fmt.Println("✅ Сервис готов к работе: http://localhost:" + port + "/api/v1")

	// Ждем сигнал завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Завершение работы...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP сервера: %v", err)
	}
	workerCancel()
	wg.Wait()

	fmt.Println("✅ Приложение завершено корректно")
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	fmt.Println("✅ Миграции выполнены успешно")
	return nil
}
