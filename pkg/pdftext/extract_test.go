package pdftext_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/pdftext"
	mockpdftext "github.com/sonnq3591/plg-hsdt/pkg/pdftext/mock"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func TestJoin(t *testing.T) {
	pages := []string{"Chương V", "Yêu cầu"}

	plain, err := pdftext.Join(pages, pdftext.Plain)
	require.NoError(t, err)
	require.Equal(t, "Chương V\nYêu cầu\n", plain)

	paged, err := pdftext.Join(pages, pdftext.Paged)
	require.NoError(t, err)
	require.Equal(t, "\n--- PAGE 1 ---\nChương V\n--- PAGE 2 ---\nYêu cầu", paged)
}

func TestJoin_NormalisesToNFC(t *testing.T) {
	// "ế" written as e + combining circumflex + combining acute
	decomposed := "thie\u0302\u0301t"

	got, err := pdftext.Join([]string{decomposed}, pdftext.Plain)
	require.NoError(t, err)
	require.Equal(t, "thiết\n", got)
}

func TestJoin_NoText(t *testing.T) {
	_, err := pdftext.Join([]string{"", " \n "}, pdftext.Plain)
	require.ErrorIs(t, err, serrors.ErrUnprocessable)

	_, err = pdftext.Join(nil, pdftext.Paged)
	require.ErrorIs(t, err, serrors.ErrUnprocessable)
}

func TestService_PagedPrefersPoppler(t *testing.T) {
	ctrl := gomock.NewController(t)
	native := mockpdftext.NewMockPageReader(ctrl)
	poppler := mockpdftext.NewMockPageReader(ctrl)

	poppler.EXPECT().Pages(gomock.Any(), "CHUONG_V.pdf").Return([]string{"a"}, nil)

	s := pdftext.NewWithReaders(native, poppler)
	got, err := s.Extract(context.Background(), "CHUONG_V.pdf", pdftext.Paged)
	require.NoError(t, err)
	require.Equal(t, "\n--- PAGE 1 ---\na", got)
}

func TestService_FallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	native := mockpdftext.NewMockPageReader(ctrl)
	poppler := mockpdftext.NewMockPageReader(ctrl)

	gomock.InOrder(
		poppler.EXPECT().Pages(gomock.Any(), "x.pdf").Return(nil, errors.New("not installed")),
		native.EXPECT().Pages(gomock.Any(), "x.pdf").Return([]string{"b"}, nil),
	)

	s := pdftext.NewWithReaders(native, poppler)
	got, err := s.Extract(context.Background(), "x.pdf", pdftext.Paged)
	require.NoError(t, err)
	require.Equal(t, "\n--- PAGE 1 ---\nb", got)
}

func TestService_PlainNativeOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	native := mockpdftext.NewMockPageReader(ctrl)
	boom := errors.New("boom")

	native.EXPECT().Pages(gomock.Any(), "x.pdf").Return(nil, boom)

	s := pdftext.NewWithReaders(native, nil)
	_, err := s.Extract(context.Background(), "x.pdf", pdftext.Plain)
	require.ErrorIs(t, err, boom)
}

func TestNative_NotAPDF(t *testing.T) {
	path := t.TempDir() + "/bad.pdf"
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	_, err := pdftext.Native{}.Pages(context.Background(), path)
	require.ErrorIs(t, err, serrors.ErrUnprocessable)
}
