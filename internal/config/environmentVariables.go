package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	SESSION_ID_KEY              = "sessionId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//idle per-IP limiters are dropped after this
	LimiterIdleTimeout   = 10 * time.Minute
	LimiterSweepInterval = time.Minute

	//embedding dimensions per provider
	GoogleEmbeddingDimension = 768
	OpenAIEmbeddingDimension = 1536
	EmbeddingBatchSize       = 100

	//retrieval
	DefaultSearchK           = 5
	SearchThreshold          = 0.3
	SearchRelaxedThreshold   = 0.1
	RelevanceSearchK         = 1
	RecommendationsPerSignal = 3

	//budgets, in characters
	MaxKnowledgeContextChars = 2000
	MaxFileContentChars      = 4000
	MaxJSONContentChars      = 5000
	MaxPDFContentChars       = 20000
	MaxHistoryTurns          = 6
	MaxTabularRows           = 100
	MaxExcelSheets           = 5
	MaxUploadBytes           = 10 * 1024 * 1024

	//sessions held in memory
	SessionIdleTimeout   = 2 * time.Hour
	SessionSweepInterval = 10 * time.Minute

	//summarizer
	SummaryTargetChunks  = 6
	SummaryMinChunkChars = 1200

	//every llm and embedding call
	ExternalCallTimeout = 30 * time.Second
	PDFPageTimeout      = 10 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//outbound http pool shared by the llm and embedding clients
	MaxIdleConns        = 20
	MaxIdleConnsPerHost = 10
	IdleConnTimeout     = 90 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//vectorDB
	QdrantGrpcPort         = 6334
	QdrantPoolSize         = 1 //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout = 30 * time.Second
	DefaultCollectionName  = "cognitive_health"

	//llm
	GeminiModelName      = "gemini-2.0-flash"
	GoogleEmbeddingModel = "text-embedding-004"
	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ChatTemperature          float32 = 0.7
	ChatMaxTokens                    = 800
	ChunkSummaryTemperature  float32 = 0.3
	ChunkSummaryMaxTokens            = 300
	FusionSummaryTemperature float32 = 0.4
	FusionSummaryMaxTokens           = 600

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisConversationStore = 1

	//redis timeouts
	RedisConversationStoreTTL = 24 * time.Hour
)
