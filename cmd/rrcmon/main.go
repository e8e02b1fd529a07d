package main

import (
	"context"
	"flag"
	"log"
	"reflect"

	fx "github.com/robotalks/rrc.go/pkg/framework"
	"github.com/robotalks/rrc.go/pkg/remote/msgs"
	"github.com/robotalks/rrc.go/pkg/remote/mqtt"
)

func init() {
	mqtt.SetupFlags()
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewConfig().NewQueue()
	if err != nil {
		log.Fatalln(err)
	}
	defer q.Close()

	_, err = q.Subscribe("#", func(topic string, payload []byte) {
		if _, suffix, ok := mqtt.SplitTopic(topic); ok && suffix == mqtt.TopicMeta {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: [%d] %s %s", topic, typed.Sequence,
			reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String())
	})
	if err != nil {
		log.Fatalln(err)
	}
	err = fx.NewRunner().HandleSignals().Run(fx.RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	if err != nil {
		log.Fatalln(err)
	}
}
