package router

import (
	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/config"

	"github.com/gin-gonic/gin"
)

// Handlers 所有业务 Handler
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Comment      *handler.CommentHandler
	Tweet        *handler.TweetHandler
	Playlist     *handler.PlaylistHandler
	Dashboard    *handler.DashboardHandler
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, jwtCfg *config.JWTConfig, h *Handlers) {
	v1 := r.Group("/api/v1")

	authRequired := middleware.AuthRequired(jwtCfg)
	optionalAuth := middleware.OptionalAuth(jwtCfg)

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", authRequired, h.Auth.Me)
	}

	// --- 用户模块 ---
	users := v1.Group("/users", optionalAuth)
	{
		users.GET("/:id", h.User.GetUser)
		users.GET("/:id/channel", h.User.GetChannelProfile)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口，登录时补充点赞、订阅状态
		videos.GET("", h.Video.ListVideos)
		videos.GET("/:videoId", optionalAuth, h.Video.GetVideo)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", h.Video.PublishVideo)
			videosAuth.PATCH("/:videoId", h.Video.UpdateVideo)
			videosAuth.DELETE("/:videoId", h.Video.DeleteVideo)
			videosAuth.PATCH("/toggle/publish/:videoId", h.Video.TogglePublishStatus)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.POST("/toggle/v/:videoId", h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.GetLikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/c/:channelId", h.Subscription.GetChannelSubscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.GetSubscribedChannels)
		subscriptions.POST("/c/:channelId", authRequired, h.Subscription.ToggleSubscription)
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", optionalAuth, h.Comment.GetVideoComments)

		commentsAuth := comments.Group("", authRequired)
		{
			commentsAuth.POST("/:videoId", h.Comment.AddComment)
			commentsAuth.PATCH("/c/:commentId", h.Comment.UpdateComment)
			commentsAuth.DELETE("/c/:commentId", h.Comment.DeleteComment)
		}
	}

	// --- 动态模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:userId", optionalAuth, h.Tweet.GetUserTweets)

		tweetsAuth := tweets.Group("", authRequired)
		{
			tweetsAuth.POST("", h.Tweet.CreateTweet)
			tweetsAuth.PATCH("/:tweetId", h.Tweet.UpdateTweet)
			tweetsAuth.DELETE("/:tweetId", h.Tweet.DeleteTweet)
		}
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:playlistId", h.Playlist.GetPlaylist)
		playlists.GET("/user/:userId", h.Playlist.GetUserPlaylists)

		playlistsAuth := playlists.Group("", authRequired)
		{
			playlistsAuth.POST("", h.Playlist.CreatePlaylist)
			playlistsAuth.PATCH("/:playlistId", h.Playlist.UpdatePlaylist)
			playlistsAuth.DELETE("/:playlistId", h.Playlist.DeletePlaylist)
			playlistsAuth.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
			playlistsAuth.PATCH("/remove/:videoId/:playlistId", h.Playlist.RemoveVideo)
		}
	}

	// --- 控制台模块 ---
	dashboard := v1.Group("/dashboard", authRequired)
	{
		dashboard.GET("/stats", h.Dashboard.GetChannelStats)
		dashboard.GET("/videos", h.Dashboard.GetChannelVideos)
	}
}
