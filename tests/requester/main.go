package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/auth"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/orders/", "orders endpoint")
	secret := flag.String("secret", "", "jwt secret")
	userID := flag.String("user", "", "order owner id")
	orderID := flag.String("order", "", "existing order id")
	flag.Parse()

	token, err := auth.NewTokenVerifier(*secret).Issue(entities.Principal{UserID: *userID, Role: entities.RoleUser}, time.Hour)
	if err != nil {
		panic(err)
	}

	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { doRequest(*baseURL, token, *orderID) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

// Большая часть запросов попадает в кэш, остальные проверяют 404 и список заказов.
func doRequest(baseURL, token, orderID string) {
	url := baseURL + orderID
	switch rand.Intn(5) {
	case 0:
		url = baseURL + randomID(12)
	case 1:
		url = baseURL + "myorders"
	}

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	fmt.Println("GET", url, "->", resp.Status)
	resp.Body.Close()
}
