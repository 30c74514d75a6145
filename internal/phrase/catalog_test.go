package phrase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMatchesLocales(t *testing.T) {
	tests := map[string]string{
		"ko":    "ko",
		"ko-KR": "ko",
		"en":    "en",
		"en-US": "en",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			c, err := New(in)
			require.NoError(t, err)
			require.Equal(t, want, c.Locale())
		})
	}
}

func TestNewUnknownLocale(t *testing.T) {
	for _, in := range []string{"", "not a tag!", "fr"} {
		_, err := New(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrUnknownLocale), in)
	}
}

func TestKoreanPurchasePhrasing(t *testing.T) {
	c := Default()

	require.Equal(t, "물이 나왔습니다. (이번 번호에서 총 1개 나옴)",
		c.Format(KeyCashPurchase, Args{Name: "water", Count: 1}))
	require.Equal(t, "콜라가 나왔습니다. (이번 번호에서 총 2개 나옴)",
		c.Format(KeyCashPurchase, Args{Name: "cola", Count: 2}))
	require.Equal(t, "물을 결제했습니다. (이번 번호에서 총 1개 나옴)",
		c.Format(KeyCardPurchase, Args{Name: "water", Count: 1}))
	require.Equal(t, "커피를 결제했습니다. (이번 번호에서 총 3개 나옴)",
		c.Format(KeyCardPurchase, Args{Name: "coffee", Count: 3}))
	require.Equal(t, "물은 품절입니다.", c.Format(KeySoldOut, Args{Name: "water"}))
	require.Equal(t, "커피는 품절입니다.", c.Format(KeySoldOut, Args{Name: "coffee"}))
}

func TestKoreanAmounts(t *testing.T) {
	c := Default()

	require.Equal(t, "1,000원을 투입했습니다. (투입 금액 1,500원)",
		c.Format(KeyCashInserted, Args{Amount: 1000, Balance: 1500}))
	require.Equal(t, "금액이 부족합니다. (1,100원 필요)",
		c.Format(KeyInsufficientCash, Args{Amount: 1100}))
	require.Equal(t, "400원을 반환했습니다.", c.Format(KeyChangeReturned, Args{Amount: 400}))
}

func TestKoreanRefundPrefix(t *testing.T) {
	c := Default()

	require.Equal(t, "카드가 인식되었습니다. 상품 번호를 입력해 주세요.",
		c.Format(KeyCardAccepted, Args{}))
	require.Equal(t, "500원을 반환하고 카드가 인식되었습니다. 상품 번호를 입력해 주세요.",
		c.Format(KeyCardAccepted, Args{Refund: 500}))
	require.Equal(t, "500원을 반환하고 카드를 인식할 수 없습니다. 다른 카드를 사용해 주세요.",
		c.Format(KeyCardUnreadable, Args{Refund: 500}))
}

func TestItemsCollectedCardReminder(t *testing.T) {
	c := Default()

	require.Equal(t, "음료를 가져갔습니다.", c.Format(KeyItemsCollected, Args{}))
	require.Equal(t, "음료를 가져갔습니다. 더 주문하지 않으시면 카드를 꺼내 주세요.",
		c.Format(KeyItemsCollected, Args{CardActive: true}))
}

func TestEnglishCatalog(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	require.Equal(t, "water is ready. (1 dispensed from this slot)",
		c.Format(KeyCashPurchase, Args{Name: "water", Count: 1}))
	require.Equal(t, "coffee was charged. (2 dispensed from this slot)",
		c.Format(KeyCardPurchase, Args{Name: "coffee", Count: 2}))
	require.Equal(t, "Inserted 10,000 won. (Balance 10,000 won)",
		c.Format(KeyCashInserted, Args{Amount: 10000, Balance: 10000}))
}

func TestEveryKeyHasBothLocales(t *testing.T) {
	for key := range koMessages {
		_, ok := enMessages[key]
		require.True(t, ok, "missing en message for %s", key)
	}
	require.Len(t, enMessages, len(koMessages))
}

func TestUnknownKeyRendersKey(t *testing.T) {
	require.Equal(t, "nope", Default().Format(Key("nope"), Args{}))
}

func TestKoreanFinalOverride(t *testing.T) {
	k := Korean{Final: map[string]bool{"OK": true}}
	require.Equal(t, "OK이", k.Subject("OK"))
	require.Equal(t, "Tea가", k.Subject("Tea"))
}
