package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// GuestCartCodec signs the guest-cart cookie so the client cannot point it at
// someone else's cart. The cookie carries nothing but the cart id.
type GuestCartCodec struct {
	sc         *securecookie.SecureCookie
	cookieName string
}

func NewGuestCartCodec(cookieName, hashKey, blockKey string) *GuestCartCodec {
	var block []byte
	if blockKey != "" {
		block = []byte(blockKey)
	}
	return &GuestCartCodec{
		sc:         securecookie.New([]byte(hashKey), block),
		cookieName: cookieName,
	}
}

// Read returns the cart id from a valid cookie, or 0. A tampered or malformed
// cookie reads as absent, never as an error.
func (g *GuestCartCodec) Read(c *gin.Context) uint {
	raw, err := c.Cookie(g.cookieName)
	if err != nil {
		return 0
	}
	var cartID uint
	if err := g.sc.Decode(g.cookieName, raw, &cartID); err != nil {
		return 0
	}
	return cartID
}

func (g *GuestCartCodec) Write(c *gin.Context, cartID uint) {
	encoded, err := g.sc.Encode(g.cookieName, cartID)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     g.cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *GuestCartCodec) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GuestCart resolves the guest cart id onto the context for every request.
func GuestCart(codec *GuestCartCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := codec.Read(c); id != 0 {
			c.Set("guestCartId", id)
		}
		c.Next()
	}
}
