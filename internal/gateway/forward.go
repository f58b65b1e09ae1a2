package gateway

import (
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// isMultipartRequest はストリーミング転送の対象かどうかを判定する。
// ボディを持つ書き込みメソッドかつContent-Typeがマルチパートの場合のみ
// 対象となる。メソッドの判定がContent-Typeの判定より優先される。
func isMultipartRequest(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "multipart/")
}

// streamForward はマルチパートリクエストを内部サービスにストリーミング転送する。
//
// リクエストボディもレスポンスボディも全量をメモリに載せず、そのまま
// 中継する。呼び出し元が切断するとリクエストコンテキスト経由で
// 上流への呼び出しも中断される。上流からの読み取りが途中で失敗した
// 場合は、切り詰められたボディを正常応答として返さないよう
// コネクションを切断する。
func (s *Server) streamForward(c *gin.Context, upstream string) {
	url := upstream + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		url += "?" + q
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "プロキシリクエストの作成に失敗しました"})
		return
	}

	// Hostは転送先を反映する必要があるため、元のヘッダーから引き継がない
	req.Header = c.Request.Header.Clone()
	req.Header.Del("Host")
	req.ContentLength = c.Request.ContentLength

	resp, err := s.streamClient.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "内部サービスとの通信に失敗しました"})
		log.Printf("ストリーミング転送エラー: url=%s, error=%v", url, err)
		return
	}
	defer resp.Body.Close()

	header := c.Writer.Header()
	for key, values := range resp.Header {
		for _, v := range values {
			header.Add(key, v)
		}
	}
	c.Writer.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		log.Printf("ストリーミング応答の中継に失敗: url=%s, error=%v", url, err)
		panic(http.ErrAbortHandler)
	}
}
