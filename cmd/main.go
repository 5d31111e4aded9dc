package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"furari/internal/domain/repository"
	"furari/internal/domain/service"
	"furari/internal/handler"
	"furari/internal/infrastructure/ai"
	"furari/internal/infrastructure/database"
	"furari/internal/infrastructure/osm"
	repoImpl "furari/internal/repository"
	"furari/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	// POIソースの選択 (overpass | postgres | supabase)
	poiProvider, cleanup, err := buildPOIProvider()
	if err != nil {
		log.Fatalf("POIプロバイダ初期化失敗: %v", err)
	}
	defer cleanup()

	// Gemini APIキーがあればAI生成経路を有効化（なければ決定的エンジンのみ）
	var aiRepo repository.CourseGenerationRepository
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		aiRepo = ai.NewGeminiCourseRepository(ai.NewGeminiClient(apiKey))
		fmt.Println("✅ Gemini APIによるAIコース生成が有効です")
	} else {
		fmt.Println("⚠️  GEMINI_API_KEYが未設定のため、決定的エンジンのみで動作します")
	}

	courseUseCase := usecase.NewCourseUseCase(
		osm.NewNominatimGeocoder(),
		poiProvider,
		aiRepo,
		service.NewCourseGeneratorService(),
	)
	courseHandler := handler.NewCourseHandler(courseUseCase)

	r := gin.Default()
	r.POST("/api/courses", courseHandler.PostCourses)
	r.GET("/api/health", courseHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("furari server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}

// buildPOIProvider はPOI_SOURCE環境変数に応じたプロバイダを構築する
func buildPOIProvider() (repository.POIProvider, func(), error) {
	noop := func() {}

	switch os.Getenv("POI_SOURCE") {
	case "postgres":
		fmt.Println("Initializing PostgreSQL client...")
		// コンテナ環境ではDBの起動が遅れることがあるためリトライ付きで接続する
		client, err := database.NewPostgreSQLClientWithRetry(3, 2*time.Second)
		if err != nil {
			return nil, noop, err
		}
		if err := client.HealthCheck(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("PostgreSQLヘルスチェック失敗: %w", err)
		}
		fmt.Println("✅ PostgreSQL connection successful!")
		return repoImpl.NewPostgresPOIsRepository(client), func() { client.Close() }, nil

	case "supabase":
		fmt.Println("Initializing Supabase client...")
		client, err := database.NewSupabaseClient()
		if err != nil {
			return nil, noop, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, noop, fmt.Errorf("Supabaseヘルスチェック失敗: %w", err)
		}
		fmt.Println("✅ Supabase connection successful!")
		return repoImpl.NewSupabasePOIsRepository(client), noop, nil

	default:
		// 既定はOverpass API（事前のデータ投入が不要）
		return osm.NewOverpassPOIProvider(), noop, nil
	}
}
