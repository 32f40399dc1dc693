// Package imagen shrinks product photos before upload: the cameras on the
// sales tablets produce multi-MB files that mobile networks take too long
// to transfer.
package imagen

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"

	// Decoders for the formats the capture devices produce.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Opciones controls the downscale bounds and JPEG quality.
type Opciones struct {
	MaxAncho int
	MaxAlto  int
	Calidad  int
}

// OpcionesPorDefecto fits within 1920×1080 at quality 80.
func OpcionesPorDefecto() Opciones {
	return Opciones{MaxAncho: 1920, MaxAlto: 1080, Calidad: 80}
}

// Optimizar decodes datos, scales it down to fit within the bounds
// preserving aspect ratio, and re-encodes it as JPEG. Images already
// within bounds keep their dimensions but are still re-encoded.
func Optimizar(datos []byte, op Opciones) ([]byte, error) {
	if len(datos) == 0 {
		return nil, errors.New("imagen vacía")
	}

	origen, _, err := image.Decode(bytes.NewReader(datos))
	if err != nil {
		return nil, err
	}

	limites := origen.Bounds()
	ancho, alto := limites.Dx(), limites.Dy()
	nuevoAncho, nuevoAlto := dimensiones(ancho, alto, op.MaxAncho, op.MaxAlto)

	destino := origen
	if nuevoAncho != ancho || nuevoAlto != alto {
		lienzo := image.NewRGBA(image.Rect(0, 0, nuevoAncho, nuevoAlto))
		draw.ApproxBiLinear.Scale(lienzo, lienzo.Bounds(), origen, limites, draw.Over, nil)
		destino = lienzo
	}

	var salida bytes.Buffer
	if err := jpeg.Encode(&salida, destino, &jpeg.Options{Quality: op.Calidad}); err != nil {
		return nil, err
	}
	return salida.Bytes(), nil
}

// dimensiones scales (ancho, alto) to fit within (maxAncho, maxAlto)
// preserving the aspect ratio; images already inside keep their size.
func dimensiones(ancho, alto, maxAncho, maxAlto int) (int, int) {
	if ancho <= maxAncho && alto <= maxAlto {
		return ancho, alto
	}
	escalaAncho := float64(maxAncho) / float64(ancho)
	escalaAlto := float64(maxAlto) / float64(alto)
	escala := escalaAncho
	if escalaAlto < escala {
		escala = escalaAlto
	}
	nuevoAncho := int(float64(ancho)*escala + 0.5)
	nuevoAlto := int(float64(alto)*escala + 0.5)
	if nuevoAncho < 1 {
		nuevoAncho = 1
	}
	if nuevoAlto < 1 {
		nuevoAlto = 1
	}
	return nuevoAncho, nuevoAlto
}
