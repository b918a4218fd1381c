package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"sitecheck-backend/handlers"
	"sitecheck-backend/inference"
	"sitecheck-backend/service"
	"sitecheck-backend/storage"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			logrus.Info("No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	// Resolve the model artifact (local path or S3-backed cache)
	store, err := storage.NewStoreFromEnv()
	if err != nil {
		logrus.Fatalf("Failed to initialize model store: %v", err)
	}

	modelKey := os.Getenv("MODEL_PATH")
	if modelKey == "" {
		modelKey = "models/sitecheck.onnx"
	}

	modelPath, err := store.Resolve(ctx, modelKey)
	if err != nil {
		logrus.Fatalf("Failed to resolve model artifact: %v", err)
	}
	logrus.Infof("Model artifact at %s", modelPath)

	// The engine itself loads lazily on the first predict request
	predictionService := service.NewPredictionService(
		service.WithPredictor(inference.LazyEngine{
			ModelPath: modelPath,
			SharedLib: os.Getenv("ONNX_SHARED_LIB"),
		}),
	)

	adviceService := service.NewAdviceService(
		service.AdviceWithGeminiClient(initGemini(ctx)),
	)

	predictHandler := handlers.NewPredictHandler(predictionService)
	adviceHandler := handlers.NewAdviceHandler(adviceService)

	// Setup Gin router
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/predict", predictHandler.Predict)
		api.POST("/advice", adviceHandler.Advise)
	}

	// Browser UI
	r.StaticFile("/", "./static/index.html")
	r.Static("/static", "./static")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}

// initGemini returns a Gemini client, or nil when advice generation is
// not configured.
func initGemini(ctx context.Context) *genai.Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logrus.Info("GEMINI_API_KEY not set, advice endpoint disabled")
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logrus.Warnf("Failed to initialize Gemini client: %v", err)
		return nil
	}

	logrus.Info("Gemini client initialized")
	return client
}
